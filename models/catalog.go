package models

import (
	"time"

	"gorm.io/gorm"
)

// Category carries an optional commission override that takes precedence
// over both the vendor override and the global rate.
type Category struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `json:"name" gorm:"uniqueIndex"`
	CommissionRate *float64       `json:"commission_rate,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Product exists here only as the source of the category link for
// commission resolution; catalog management lives outside this service.
type Product struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `json:"name"`
	SKU        string         `json:"sku" gorm:"uniqueIndex"`
	Price      float64        `json:"price"`
	CategoryID uint           `json:"category_id"`
	Category   Category       `json:"category" gorm:"foreignKey:CategoryID"`
	VendorID   *uint          `json:"vendor_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
