package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Diagnosis is the persisted record of one completed diagnosis run.
// Crop and disease references are soft: a run that fell back to
// synthetic catalog data persists with nil foreign keys. Records are
// written once and never mutated.
type Diagnosis struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID          string     `gorm:"type:varchar(255);index:idx_diagnoses_user" json:"user_id,omitempty"`
	CropID          *uuid.UUID `gorm:"type:uuid;index:idx_diagnoses_crop" json:"crop_id,omitempty"`
	DiseaseID       *uuid.UUID `gorm:"type:uuid" json:"disease_id,omitempty"`
	ImageURL        string     `gorm:"type:text" json:"image_url"`
	ConfidenceScore float64    `gorm:"type:decimal(5,4)" json:"confidence_score"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	IsOffline       bool       `gorm:"default:false" json:"is_offline"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index:idx_diagnoses_created" json:"created_at"`

	// Relations
	Crop    *Crop    `gorm:"foreignKey:CropID" json:"crop,omitempty"`
	Disease *Disease `gorm:"foreignKey:DiseaseID" json:"disease,omitempty"`
}

// TableName specifies the table name for GORM
func (Diagnosis) TableName() string {
	return "diagnoses"
}

// BeforeCreate GORM hook
func (d *Diagnosis) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DiagnosisRecord is the read shape for history listings: a diagnosis
// row joined with the crop and disease names it references.
type DiagnosisRecord struct {
	ID              uuid.UUID `json:"id"`
	CropName        string    `json:"crop_name"`
	DiseaseName     string    `json:"disease_name"`
	ImageURL        string    `json:"image_url"`
	ConfidenceScore float64   `json:"confidence_score"`
	Notes           string    `json:"notes,omitempty"`
	IsOffline       bool      `json:"is_offline"`
	CreatedAt       time.Time `json:"created_at"`
}
