package models

import (
	"time"

	"gorm.io/gorm"
)

// Order fulfillment status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusReturned   = "returned"
)

// Order payment status constants (mirrors the payment outcome)
const (
	OrderPaymentPending  = "pending"
	OrderPaymentPaid     = "paid"
	OrderPaymentFailed   = "failed"
	OrderPaymentRefunded = "refunded"
)

type Order struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Status         string         `json:"status" gorm:"default:'pending'"`
	PaymentStatus  string         `json:"payment_status" gorm:"default:'pending'"`
	Subtotal       float64        `json:"subtotal"`
	Discount       float64        `json:"discount"`
	Tax            float64        `json:"tax"`
	ShippingCost   float64        `json:"shipping_cost"`
	Total          float64        `json:"total"`
	PaymentMethod  string         `json:"payment_method"`
	ShippingMethod string         `json:"shipping_method"`
	ShippedAt      *time.Time     `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time     `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	OrderItems     []OrderItem    `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem carries a snapshot of the product at time of sale. VendorID
// is nil for items sold directly by the store (no marketplace settlement).
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `json:"order_id"`
	ProductID   uint    `json:"product_id"`
	Product     Product `json:"product" gorm:"foreignKey:ProductID"`
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
	VendorID    *uint   `json:"vendor_id,omitempty"`
	Vendor      *Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}
