package models

import (
	"time"
)

// Admin is an operations user allowed to drive status changes and payouts.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
