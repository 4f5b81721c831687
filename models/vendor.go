package models

import (
	"time"

	"gorm.io/gorm"
)

// Vendor status constants - only approved vendors take part in settlement.
const (
	VendorStatusApproved  = "approved"
	VendorStatusPending   = "pending"
	VendorStatusRejected  = "rejected"
	VendorStatusSuspended = "suspended"
)

// Payout cycle constants
const (
	PayoutCycleManual  = "manual"
	PayoutCycleWeekly  = "weekly"
	PayoutCycleMonthly = "monthly"
)

type Vendor struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	StoreName      string         `json:"store_name"`
	Email          string         `json:"email"`
	CommissionRate *float64       `json:"commission_rate,omitempty"`
	PayoutMethod   string         `json:"payout_method"`
	PayoutAccount  string         `json:"payout_account"`
	PayoutCycle    string         `json:"payout_cycle" gorm:"default:'manual'"`
	Status         string         `json:"status" gorm:"default:'pending'"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
