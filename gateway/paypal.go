package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"github.com/plutov/paypal/v4"
)

// PayPalDriver charges through the PayPal Orders API. The buyer approves
// the order on PayPal's side; the capture webhook completes the payment.
type PayPalDriver struct {
	client        *paypal.Client
	webhookSecret string
}

// NewPayPalDriver builds the PayPal driver from configuration.
func NewPayPalDriver(cfg *config.Config) *PayPalDriver {
	base := paypal.APIBaseSandBox
	if os.Getenv("PAYPAL_LIVE") == "true" {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalSecret, base)
	if err != nil {
		utils.LogError("Failed to initialize PayPal client: %v", err)
	}

	return &PayPalDriver{
		client:        client,
		webhookSecret: os.Getenv("PAYPAL_WEBHOOK_SECRET"),
	}
}

// Name implements Driver.
func (d *PayPalDriver) Name() string {
	return "paypal"
}

// Charge creates a PayPal order carrying the payment UUID as custom id.
// Approval and capture happen on PayPal's side, so the charge resolves
// to pending with the PayPal order id as transaction reference.
func (d *PayPalDriver) Charge(payment *models.Payment) (*ChargeResult, error) {
	if d.client == nil {
		return &ChargeResult{
			Success:  false,
			Status:   models.PaymentStatusFailed,
			Response: map[string]interface{}{"error": "paypal client not configured"},
		}, nil
	}

	units := []paypal.PurchaseUnitRequest{
		{
			ReferenceID: fmt.Sprintf("order_%d", payment.OrderID),
			CustomID:    payment.UUID,
			Amount: &paypal.PurchaseUnitAmount{
				Currency: "USD",
				Value:    fmt.Sprintf("%.2f", payment.Amount),
			},
		},
	}

	order, err := d.client.CreateOrder(context.Background(), paypal.OrderIntentCapture, units, nil, nil)
	if err != nil {
		utils.LogError("PayPal order create failed for payment %d: %v", payment.ID, err)
		return &ChargeResult{
			Success:  false,
			Status:   models.PaymentStatusFailed,
			Response: map[string]interface{}{"error": err.Error()},
		}, nil
	}

	return &ChargeResult{
		Success:       true,
		Status:        models.PaymentStatusPending,
		TransactionID: order.ID,
		Response: map[string]interface{}{
			"paypal_order_id": order.ID,
			"paypal_status":   order.Status,
		},
	}, nil
}

// Refund refunds a captured PayPal payment, in full or in part.
func (d *PayPalDriver) Refund(payment *models.Payment, amount float64) (*RefundResult, error) {
	if d.client == nil {
		return &RefundResult{
			Success:  false,
			Status:   payment.Status,
			Response: map[string]interface{}{"error": "paypal client not configured"},
		}, nil
	}

	refund, err := d.client.RefundCapture(context.Background(), payment.TransactionID, paypal.RefundCaptureRequest{
		Amount: &paypal.Money{
			Currency: "USD",
			Value:    fmt.Sprintf("%.2f", amount),
		},
	})
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
		Response: map[string]interface{}{
			"refund_id":     refund.ID,
			"refund_status": refund.Status,
		},
	}, nil
}

// paypalWebhook mirrors the slice of the event payload this service reads.
type paypalWebhook struct {
	EventType string `json:"event_type"`
	Resource  struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		CustomID string `json:"custom_id"`
	} `json:"resource"`
}

// HandleWebhook verifies and normalizes a PayPal webhook delivery.
func (d *PayPalDriver) HandleWebhook(r *http.Request) (*WebhookEvent, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, utils.WrapError(err, "failed to read webhook body")
	}

	if !VerifySignature(body, r.Header.Get("Paypal-Transmission-Sig"), d.webhookSecret) {
		return nil, ErrInvalidSignature
	}

	var event paypalWebhook
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, utils.WrapError(err, "failed to parse webhook body")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		raw = map[string]interface{}{}
	}

	return &WebhookEvent{
		Status:        d.normalizeEvent(event.EventType, event.Resource.Status),
		TransactionID: event.Resource.ID,
		PaymentUUID:   event.Resource.CustomID,
		Response:      raw,
	}, nil
}

// normalizeEvent maps PayPal event types and resource states onto the
// canonical vocabulary.
func (d *PayPalDriver) normalizeEvent(eventType, status string) string {
	switch eventType {
	case "PAYMENT.CAPTURE.COMPLETED":
		return models.PaymentStatusCompleted
	case "PAYMENT.CAPTURE.DENIED", "PAYMENT.CAPTURE.DECLINED":
		return models.PaymentStatusFailed
	case "PAYMENT.CAPTURE.REFUNDED":
		return models.PaymentStatusRefunded
	case "PAYMENT.CAPTURE.PARTIALLY_REFUNDED":
		return models.PaymentStatusPartiallyRefunded
	}

	switch status {
	case "COMPLETED":
		return models.PaymentStatusCompleted
	case "DECLINED", "FAILED":
		return models.PaymentStatusFailed
	case "REFUNDED":
		return models.PaymentStatusRefunded
	default:
		return models.PaymentStatusPending
	}
}
