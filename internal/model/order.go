package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PaymentStatus represents the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "UNPAID"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Order is an immutable snapshot cut from a cart or a direct submission.
// Prices and design payloads are copied by value; an order never reads live
// cart or variant state after creation.
type Order struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        uint            `json:"user_id" gorm:"not null;index"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentStatus PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	TotalPrice    decimal.Decimal `json:"total_price" gorm:"type:decimal(20,2);not null;default:0"`
	CustomerName  string          `json:"customer_name" gorm:"size:255;not null"`
	CustomerPhone string          `json:"customer_phone" gorm:"size:32;not null"`
	Region        string          `json:"region" gorm:"size:128"`
	Address       string          `json:"address" gorm:"size:512"`
	Comment       string          `json:"comment" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is one line of an order with the unit price captured at
// conversion time.
type OrderItem struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderID         uint            `json:"order_id" gorm:"not null;index"`
	VariantID       uint            `json:"variant_id" gorm:"not null;index"`
	Quantity        int             `json:"quantity" gorm:"not null"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	FrontDesignData *string         `json:"front_design_data,omitempty" gorm:"type:mediumtext"`
	BackDesignData  *string         `json:"back_design_data,omitempty" gorm:"type:mediumtext"`
	FrontPreviewURL *string         `json:"front_preview_url,omitempty" gorm:"size:512"`
	BackPreviewURL  *string         `json:"back_preview_url,omitempty" gorm:"size:512"`
	CreatedAt       time.Time       `json:"created_at"`

	// Relations
	Variant Variant `json:"-" gorm:"foreignKey:VariantID"`
}
