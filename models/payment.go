package models

import (
	"time"
)

// Payment status constants
const (
	PaymentStatusPending           = "pending"
	PaymentStatusCompleted         = "completed"
	PaymentStatusFailed            = "failed"
	PaymentStatusRefunded          = "refunded"
	PaymentStatusPartiallyRefunded = "partially_refunded"
)

// AuditEntry is one record in a payment's gateway-response log. The log is
// append-only; every status transition and gateway payload merge adds one entry.
type AuditEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Actor     string                 `json:"actor"`
	From      string                 `json:"from,omitempty"`
	To        string                 `json:"to,omitempty"`
	Note      string                 `json:"note,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// Payment is created once per order; re-attempts reuse the same record.
type Payment struct {
	ID              uint         `json:"id" gorm:"primaryKey"`
	OrderID         uint         `json:"order_id" gorm:"uniqueIndex"`
	Order           Order        `json:"-" gorm:"foreignKey:OrderID"`
	UUID            string       `json:"uuid" gorm:"uniqueIndex;size:64"`
	Amount          float64      `json:"amount"`
	Status          string       `json:"status" gorm:"default:'pending'"`
	PaymentMethod   string       `json:"payment_method"`
	TransactionID   string       `json:"transaction_id" gorm:"index"`
	RefundAmount    float64      `json:"refund_amount"`
	PaymentDate     *time.Time   `json:"payment_date,omitempty"`
	RefundDate      *time.Time   `json:"refund_date,omitempty"`
	GatewayResponse []AuditEntry `json:"gateway_response" gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// AppendAudit appends a structured entry to the gateway-response log.
func (p *Payment) AppendAudit(entry AuditEntry) {
	entry.Timestamp = time.Now()
	p.GatewayResponse = append(p.GatewayResponse, entry)
}
