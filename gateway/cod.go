package gateway

import (
	"fmt"
	"net/http"

	"github.com/Rahul-714/MarketNest/models"
	"github.com/google/uuid"
)

// CODDriver handles cash-on-delivery orders. There is no external provider:
// a charge stays pending until an operator marks it completed on delivery,
// and refunds settle offline.
type CODDriver struct{}

// NewCODDriver builds the cash-on-delivery driver.
func NewCODDriver() *CODDriver {
	return &CODDriver{}
}

// Name implements Driver.
func (d *CODDriver) Name() string {
	return "cod"
}

// Charge accepts the order with nothing collected yet.
func (d *CODDriver) Charge(payment *models.Payment) (*ChargeResult, error) {
	return &ChargeResult{
		Success:       true,
		Status:        models.PaymentStatusPending,
		TransactionID: fmt.Sprintf("cod_%s", uuid.New().String()),
		Response:      map[string]interface{}{"method": "cod"},
	}, nil
}

// Refund records an offline refund; the cash movement happens outside
// the system.
func (d *CODDriver) Refund(payment *models.Payment, amount float64) (*RefundResult, error) {
	return &RefundResult{
		Success:      true,
		Status:       models.PaymentStatusRefunded,
		RefundAmount: amount,
		Response:     map[string]interface{}{"method": "cod", "settled": "offline"},
	}, nil
}

// HandleWebhook implements Driver; cash on delivery has no webhooks.
func (d *CODDriver) HandleWebhook(r *http.Request) (*WebhookEvent, error) {
	return nil, ErrWebhookUnsupported
}
