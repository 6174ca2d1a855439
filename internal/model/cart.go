package model

import (
	"time"

	"gorm.io/gorm"
)

// Cart is the single mutable cart of a user, created lazily on first access.
// The cart owns its items' lifecycle; items are deleted when an order is cut.
type Cart struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Items []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// CartItem is one variant line in a cart. At most one row exists per
// (cart, variant); adding the same variant again increments Quantity.
type CartItem struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	CartID          uint           `json:"cart_id" gorm:"not null;uniqueIndex:idx_cart_variant"`
	VariantID       uint           `json:"variant_id" gorm:"not null;uniqueIndex:idx_cart_variant"`
	Quantity        int            `json:"quantity" gorm:"not null;default:1"`
	FrontDesignData *string        `json:"front_design_data,omitempty" gorm:"type:mediumtext"`
	BackDesignData  *string        `json:"back_design_data,omitempty" gorm:"type:mediumtext"`
	FrontPreviewURL *string        `json:"front_preview_url,omitempty" gorm:"size:512"`
	BackPreviewURL  *string        `json:"back_preview_url,omitempty" gorm:"size:512"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Variant Variant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
}
