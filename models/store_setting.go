package models

import (
	"time"
)

// Defaults applied when no StoreSetting row exists.
const (
	DefaultCommissionRate = 10.0
)

// StoreSetting is the process-wide singleton configuration row. The core
// only reads it; administration happens elsewhere.
type StoreSetting struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	GlobalCommissionRate float64   `json:"global_commission_rate" gorm:"default:10"`
	AutoPayoutEnabled    bool      `json:"auto_payout_enabled" gorm:"default:false"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
