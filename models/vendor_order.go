package models

import (
	"time"
)

// Payout status constants for ledger rows
const (
	PayoutStatusPending = "pending"
	PayoutStatusPaid    = "paid"
)

// VendorOrder is the settlement ledger row for one vendor's share of one
// order. Exactly one row exists per (vendor, order) pair; re-running the
// settlement aggregator overwrites the totals in place.
type VendorOrder struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	VendorID         uint      `json:"vendor_id" gorm:"uniqueIndex:idx_vendor_order,priority:1"`
	Vendor           Vendor    `json:"-" gorm:"foreignKey:VendorID"`
	OrderID          uint      `json:"order_id" gorm:"uniqueIndex:idx_vendor_order,priority:2"`
	Order            Order     `json:"-" gorm:"foreignKey:OrderID"`
	Subtotal         float64   `json:"subtotal"`
	CommissionAmount float64   `json:"commission_amount"`
	VendorEarnings   float64   `json:"vendor_earnings"`
	PayoutStatus     string    `json:"payout_status" gorm:"default:'pending'"`
	ShippingStatus   string    `json:"shipping_status" gorm:"default:'pending'"`
	ShippingMethod   string    `json:"shipping_method"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
