package model

import (
	"time"

	"gorm.io/gorm"
)

// AssetKind classifies catalog media.
type AssetKind string

const (
	AssetKindMockup   AssetKind = "mockup"
	AssetKindTemplate AssetKind = "template"
	AssetKindPreview  AssetKind = "preview"
)

// Asset represents a catalog media file (mockup images, print templates).
type Asset struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProductID *uint          `json:"product_id,omitempty" gorm:"index"`
	URL       string         `json:"url" gorm:"size:512;not null"`
	Kind      AssetKind      `json:"kind" gorm:"type:varchar(20);not null;default:'mockup'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
