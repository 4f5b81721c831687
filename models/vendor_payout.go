package models

import (
	"time"
)

// Vendor payout status constants
const (
	VendorPayoutPending    = "pending"
	VendorPayoutProcessing = "processing"
	VendorPayoutCompleted  = "completed"
	VendorPayoutFailed     = "failed"
)

// Payout provider constants
const (
	PayoutProviderStripeConnect = "stripe_connect"
	PayoutProviderPayPal        = "paypal_payouts"
	PayoutProviderManual        = "manual"
)

// VendorPayout records one settlement of a vendor's accumulated earnings.
// Never created with a non-positive amount.
type VendorPayout struct {
	ID                   uint                   `gorm:"primaryKey" json:"id"`
	VendorID             uint                   `json:"vendor_id" gorm:"index"`
	Vendor               Vendor                 `json:"-" gorm:"foreignKey:VendorID"`
	Amount               float64                `json:"amount"`
	Status               string                 `json:"status" gorm:"default:'pending'"`
	Provider             string                 `json:"provider"`
	TransactionReference string                 `json:"transaction_reference"`
	ProcessedAt          *time.Time             `json:"processed_at,omitempty"`
	Meta                 map[string]interface{} `json:"meta,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
}
