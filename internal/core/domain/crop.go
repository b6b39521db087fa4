package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Crop represents a cultivable crop known to the catalog
type Crop struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_crops_name" json:"name"`
	ScientificName string    `gorm:"type:varchar(255)" json:"scientific_name"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL       string    `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Diseases []Disease `gorm:"foreignKey:CropID;constraint:OnDelete:CASCADE" json:"diseases,omitempty"`
}

// TableName specifies the table name for GORM
func (Crop) TableName() string {
	return "crops"
}

// BeforeCreate GORM hook
func (c *Crop) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Synthetic reports whether this crop was fabricated in memory rather
// than loaded from the store. Synthetic records carry the nil UUID so
// they are never mistaken for persisted rows.
func (c *Crop) Synthetic() bool {
	return c.ID == uuid.Nil
}
