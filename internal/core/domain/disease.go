package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Disease represents a crop disease record in the catalog. Treatment
// columns hold semicolon-delimited advice lists, split on read.
type Disease struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CropID            uuid.UUID `gorm:"type:uuid;index:idx_diseases_crop" json:"crop_id"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	Symptoms          string    `gorm:"type:text" json:"symptoms,omitempty"`
	Causes            string    `gorm:"type:text" json:"causes,omitempty"`
	Prevention        string    `gorm:"type:text" json:"prevention,omitempty"`
	OrganicTreatment  string    `gorm:"type:text" json:"organic_treatment,omitempty"`
	ChemicalTreatment string    `gorm:"type:text" json:"chemical_treatment,omitempty"`
	ImageURL          string    `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Crop *Crop `gorm:"foreignKey:CropID" json:"crop,omitempty"`
}

// TableName specifies the table name for GORM
func (Disease) TableName() string {
	return "diseases"
}

// BeforeCreate GORM hook
func (d *Disease) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Synthetic reports whether this disease was fabricated in memory
// rather than loaded from the store. Synthetic records carry the nil
// UUID so they are never mistaken for persisted rows.
func (d *Disease) Synthetic() bool {
	return d.ID == uuid.Nil
}

// OrganicTreatmentList returns the organic treatment advice as a list.
func (d *Disease) OrganicTreatmentList() []string {
	return SplitTreatments(d.OrganicTreatment)
}

// ChemicalTreatmentList returns the chemical treatment advice as a list.
func (d *Disease) ChemicalTreatmentList() []string {
	return SplitTreatments(d.ChemicalTreatment)
}

// SplitTreatments splits a semicolon-delimited treatment string into
// trimmed entries. Empty segments are dropped, so an empty or
// whitespace-only input yields a nil slice, never [""].
func SplitTreatments(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
