package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayDriver charges through Razorpay orders. A charge creates a
// Razorpay order and stays pending until the capture webhook lands.
type RazorpayDriver struct {
	client        *razorpay.Client
	webhookSecret string
}

// NewRazorpayDriver builds the Razorpay driver from configuration.
func NewRazorpayDriver(cfg *config.Config) *RazorpayDriver {
	return &RazorpayDriver{
		client:        razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret),
		webhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
	}
}

// Name implements Driver.
func (d *RazorpayDriver) Name() string {
	return "razorpay"
}

// Charge creates a Razorpay order for the payment amount. Razorpay captures
// asynchronously, so a successful create resolves to pending.
func (d *RazorpayDriver) Charge(payment *models.Payment) (*ChargeResult, error) {
	// Razorpay expects the amount in paise.
	amountPaise := int(math.Round(payment.Amount * 100))
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         fmt.Sprintf("order_rcptid_%d", payment.OrderID),
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"payment_uuid": payment.UUID,
		},
	}

	rzOrder, err := d.client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Razorpay order create failed for payment %d: %v", payment.ID, err)
		return &ChargeResult{
			Success:  false,
			Status:   models.PaymentStatusFailed,
			Response: map[string]interface{}{"error": err.Error()},
		}, nil
	}

	return &ChargeResult{
		Success:       true,
		Status:        models.PaymentStatusPending,
		TransactionID: fmt.Sprintf("%v", rzOrder["id"]),
		Response:      rzOrder,
	}, nil
}

// Refund refunds a captured Razorpay payment, in full or in part.
func (d *RazorpayDriver) Refund(payment *models.Payment, amount float64) (*RefundResult, error) {
	amountPaise := int(math.Round(amount * 100))
	refund, err := d.client.Payment.Refund(payment.TransactionID, amountPaise, map[string]interface{}{
		"notes": map[string]interface{}{
			"payment_uuid": payment.UUID,
		},
	}, nil)
	if err != nil {
		return &RefundResult{
			Success:  false,
			Status:   payment.Status,
			Response: map[string]interface{}{"error": err.Error()},
		}, nil
	}

	return &RefundResult{
		Success:      true,
		Status:       models.PaymentStatusRefunded,
		RefundAmount: amount,
		Response:     refund,
	}, nil
}

// razorpayWebhook mirrors the slice of the event payload this service reads.
type razorpayWebhook struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string            `json:"id"`
				OrderID string            `json:"order_id"`
				Status  string            `json:"status"`
				Notes   map[string]string `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
		Refund struct {
			Entity struct {
				PaymentID string            `json:"payment_id"`
				Status    string            `json:"status"`
				Notes     map[string]string `json:"notes"`
			} `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

// HandleWebhook verifies and normalizes a Razorpay webhook delivery.
func (d *RazorpayDriver) HandleWebhook(r *http.Request) (*WebhookEvent, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, utils.WrapError(err, "failed to read webhook body")
	}

	if !VerifySignature(body, r.Header.Get("X-Razorpay-Signature"), d.webhookSecret) {
		return nil, ErrInvalidSignature
	}

	var event razorpayWebhook
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, utils.WrapError(err, "failed to parse webhook body")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		raw = map[string]interface{}{}
	}

	entity := event.Payload.Payment.Entity
	transactionID := entity.ID
	uuid := entity.Notes["payment_uuid"]
	status := d.normalizeStatus(entity.Status)

	switch event.Event {
	case "refund.processed":
		transactionID = event.Payload.Refund.Entity.PaymentID
		uuid = event.Payload.Refund.Entity.Notes["payment_uuid"]
		status = models.PaymentStatusRefunded
	case "refund.partial":
		transactionID = event.Payload.Refund.Entity.PaymentID
		uuid = event.Payload.Refund.Entity.Notes["payment_uuid"]
		status = models.PaymentStatusPartiallyRefunded
	}

	return &WebhookEvent{
		Status:        status,
		TransactionID: transactionID,
		PaymentUUID:   uuid,
		Response:      raw,
	}, nil
}

// normalizeStatus maps Razorpay payment states onto the canonical vocabulary.
func (d *RazorpayDriver) normalizeStatus(status string) string {
	switch status {
	case "captured", "paid":
		return models.PaymentStatusCompleted
	case "failed":
		return models.PaymentStatusFailed
	case "refunded":
		return models.PaymentStatusRefunded
	default:
		// created, authorized, and anything unrecognized stay pending.
		return models.PaymentStatusPending
	}
}
