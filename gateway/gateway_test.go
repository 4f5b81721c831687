package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/stretchr/testify/assert"
)

func newTestFactory() *Factory {
	return NewFactory(&config.Config{})
}

func TestNormalizeMethod(t *testing.T) {
	assert.Equal(t, "razorpay", NormalizeMethod("razorpay"))
	assert.Equal(t, "razorpay", NormalizeMethod(" Razorpay "))
	assert.Equal(t, "cod", NormalizeMethod("COD"))
	assert.Equal(t, "", NormalizeMethod("   "))
}

func TestFactoryResolve(t *testing.T) {
	f := newTestFactory()

	for _, method := range []string{"razorpay", "paypal", "cod"} {
		driver, err := f.Resolve(method)
		assert.NoError(t, err)
		assert.Equal(t, method, driver.Name())
	}

	// Resolution is case and whitespace insensitive.
	driver, err := f.Resolve(" PayPal ")
	assert.NoError(t, err)
	assert.Equal(t, "paypal", driver.Name())

	_, err = f.Resolve("bitcoin")
	assert.ErrorIs(t, err, ErrUnsupportedGateway)
}

func TestFactoryResolvePayout(t *testing.T) {
	f := newTestFactory()

	for _, provider := range []string{
		models.PayoutProviderStripeConnect,
		models.PayoutProviderPayPal,
		models.PayoutProviderManual,
	} {
		driver, err := f.ResolvePayout(provider)
		assert.NoError(t, err)
		assert.Equal(t, provider, driver.Provider())
	}

	_, err := f.ResolvePayout("wire_transfer")
	assert.ErrorIs(t, err, ErrUnsupportedGateway)
}

func TestDetectPayoutProvider(t *testing.T) {
	assert.Equal(t, models.PayoutProviderStripeConnect, DetectPayoutProvider("stripe"))
	assert.Equal(t, models.PayoutProviderStripeConnect, DetectPayoutProvider("Stripe_Connect"))
	assert.Equal(t, models.PayoutProviderPayPal, DetectPayoutProvider("paypal"))
	assert.Equal(t, models.PayoutProviderPayPal, DetectPayoutProvider("paypal_payouts"))

	// Anything unrecognized routes to manual settlement.
	assert.Equal(t, models.PayoutProviderManual, DetectPayoutProvider("bank_transfer"))
	assert.Equal(t, models.PayoutProviderManual, DetectPayoutProvider(""))
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	secret := "whsec_test"

	assert.True(t, VerifySignature(body, signBody(body, secret), secret))
	assert.False(t, VerifySignature(body, signBody(body, "other_secret"), secret))
	assert.False(t, VerifySignature(body, "deadbeef", secret))
	assert.False(t, VerifySignature(body, "", secret))

	// Tampered body fails against the original signature.
	sig := signBody(body, secret)
	assert.False(t, VerifySignature([]byte(`{"event":"payment.failed"}`), sig, secret))

	// No secret configured means verification is skipped.
	assert.True(t, VerifySignature(body, "", ""))
	assert.True(t, VerifySignature(body, "anything", ""))
}

func TestRazorpayNormalizeStatus(t *testing.T) {
	d := &RazorpayDriver{}

	assert.Equal(t, models.PaymentStatusCompleted, d.normalizeStatus("captured"))
	assert.Equal(t, models.PaymentStatusCompleted, d.normalizeStatus("paid"))
	assert.Equal(t, models.PaymentStatusFailed, d.normalizeStatus("failed"))
	assert.Equal(t, models.PaymentStatusRefunded, d.normalizeStatus("refunded"))

	// Unrecognized provider states never resolve to completed.
	assert.Equal(t, models.PaymentStatusPending, d.normalizeStatus("created"))
	assert.Equal(t, models.PaymentStatusPending, d.normalizeStatus("authorized"))
	assert.Equal(t, models.PaymentStatusPending, d.normalizeStatus("something_new"))
}

func TestRazorpayHandleWebhook(t *testing.T) {
	secret := "whsec_razorpay"
	d := &RazorpayDriver{webhookSecret: secret}

	body := `{
		"event": "payment.captured",
		"payload": {
			"payment": {
				"entity": {
					"id": "pay_abc123",
					"order_id": "order_xyz789",
					"status": "captured",
					"notes": {"payment_uuid": "uuid-1"}
				}
			}
		}
	}`

	req := httptest.NewRequest("POST", "/webhooks/razorpay", strings.NewReader(body))
	req.Header.Set("X-Razorpay-Signature", signBody([]byte(body), secret))

	event, err := d.HandleWebhook(req)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, event.Status)
	assert.Equal(t, "pay_abc123", event.TransactionID)
	assert.Equal(t, "uuid-1", event.PaymentUUID)
	assert.NotEmpty(t, event.Response)
}

func TestRazorpayHandleWebhookBadSignature(t *testing.T) {
	d := &RazorpayDriver{webhookSecret: "whsec_razorpay"}

	body := `{"event": "payment.captured"}`
	req := httptest.NewRequest("POST", "/webhooks/razorpay", strings.NewReader(body))
	req.Header.Set("X-Razorpay-Signature", "deadbeef")

	_, err := d.HandleWebhook(req)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestRazorpayHandleWebhookRefundEvents(t *testing.T) {
	secret := "whsec_razorpay"
	d := &RazorpayDriver{webhookSecret: secret}

	tests := []struct {
		event  string
		status string
	}{
		{"refund.processed", models.PaymentStatusRefunded},
		{"refund.partial", models.PaymentStatusPartiallyRefunded},
	}

	for _, tt := range tests {
		body := `{
			"event": "` + tt.event + `",
			"payload": {
				"refund": {
					"entity": {
						"payment_id": "pay_abc123",
						"status": "processed",
						"notes": {"payment_uuid": "uuid-1"}
					}
				}
			}
		}`
		req := httptest.NewRequest("POST", "/webhooks/razorpay", strings.NewReader(body))
		req.Header.Set("X-Razorpay-Signature", signBody([]byte(body), secret))

		event, err := d.HandleWebhook(req)
		assert.NoError(t, err)
		assert.Equal(t, tt.status, event.Status, "event %s", tt.event)
		assert.Equal(t, "pay_abc123", event.TransactionID)
		assert.Equal(t, "uuid-1", event.PaymentUUID)
	}
}

func TestPayPalNormalizeEvent(t *testing.T) {
	d := &PayPalDriver{}

	// Event types take precedence.
	assert.Equal(t, models.PaymentStatusCompleted, d.normalizeEvent("PAYMENT.CAPTURE.COMPLETED", ""))
	assert.Equal(t, models.PaymentStatusFailed, d.normalizeEvent("PAYMENT.CAPTURE.DENIED", ""))
	assert.Equal(t, models.PaymentStatusFailed, d.normalizeEvent("PAYMENT.CAPTURE.DECLINED", ""))
	assert.Equal(t, models.PaymentStatusRefunded, d.normalizeEvent("PAYMENT.CAPTURE.REFUNDED", ""))
	assert.Equal(t, models.PaymentStatusPartiallyRefunded, d.normalizeEvent("PAYMENT.CAPTURE.PARTIALLY_REFUNDED", ""))

	// Unknown event types fall back to the resource status.
	assert.Equal(t, models.PaymentStatusCompleted, d.normalizeEvent("CHECKOUT.ORDER.APPROVED", "COMPLETED"))
	assert.Equal(t, models.PaymentStatusFailed, d.normalizeEvent("", "DECLINED"))
	assert.Equal(t, models.PaymentStatusFailed, d.normalizeEvent("", "FAILED"))
	assert.Equal(t, models.PaymentStatusRefunded, d.normalizeEvent("", "REFUNDED"))
	assert.Equal(t, models.PaymentStatusPending, d.normalizeEvent("", "CREATED"))
	assert.Equal(t, models.PaymentStatusPending, d.normalizeEvent("", ""))
}

func TestPayPalHandleWebhook(t *testing.T) {
	// No webhook secret configured: verification is skipped.
	d := &PayPalDriver{}

	body := `{
		"event_type": "PAYMENT.CAPTURE.COMPLETED",
		"resource": {
			"id": "capture_123",
			"status": "COMPLETED",
			"custom_id": "uuid-2"
		}
	}`
	req := httptest.NewRequest("POST", "/webhooks/paypal", strings.NewReader(body))

	event, err := d.HandleWebhook(req)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, event.Status)
	assert.Equal(t, "capture_123", event.TransactionID)
	assert.Equal(t, "uuid-2", event.PaymentUUID)
}

func TestCODDriver(t *testing.T) {
	d := NewCODDriver()

	payment := &models.Payment{ID: 1, Amount: 150}

	charge, err := d.Charge(payment)
	assert.NoError(t, err)
	assert.True(t, charge.Success)
	assert.Equal(t, models.PaymentStatusPending, charge.Status)
	assert.True(t, strings.HasPrefix(charge.TransactionID, "cod_"))

	refund, err := d.Refund(payment, 150)
	assert.NoError(t, err)
	assert.True(t, refund.Success)
	assert.Equal(t, models.PaymentStatusRefunded, refund.Status)

	req := httptest.NewRequest("POST", "/webhooks/cod", strings.NewReader("{}"))
	_, err = d.HandleWebhook(req)
	assert.ErrorIs(t, err, ErrWebhookUnsupported)
}

func TestManualPayoutDriver(t *testing.T) {
	d := NewManualPayout()

	vendor := &models.Vendor{ID: 1, StoreName: "Acme"}
	payout := &models.VendorPayout{ID: 1, VendorID: 1, Amount: 300}

	result, err := d.SendPayout(vendor, payout)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.Reference, "manual_"))
}
