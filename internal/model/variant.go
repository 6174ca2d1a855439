package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Variant represents a sellable combination of product, color and size.
// Price is the authoritative unit price read at order conversion time.
type Variant struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	ProductID uint            `json:"product_id" gorm:"not null;index"`
	SKU       string          `json:"sku" gorm:"size:64;uniqueIndex"`
	Color     string          `json:"color" gorm:"size:64"`
	Size      string          `json:"size" gorm:"size:32"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null;default:0"`
	Stock     int             `json:"stock" gorm:"not null;default:0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}
