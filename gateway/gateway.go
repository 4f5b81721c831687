package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/models"
)

// Typed errors surfaced at the gateway boundary.
var (
	ErrUnsupportedGateway = errors.New("unsupported payment gateway")
	ErrInvalidSignature   = errors.New("webhook signature verification failed")
	ErrWebhookUnsupported = errors.New("gateway does not deliver webhooks")
)

// ChargeResult is the normalized outcome of a charge attempt.
type ChargeResult struct {
	Success       bool
	Status        string
	TransactionID string
	Response      map[string]interface{}
}

// RefundResult is the normalized outcome of a refund call.
type RefundResult struct {
	Success      bool
	Status       string
	RefundAmount float64
	Response     map[string]interface{}
}

// WebhookEvent is a provider webhook normalized to the canonical payment
// status vocabulary. TransactionID and PaymentUUID are the lookup keys;
// either may be empty.
type WebhookEvent struct {
	Status        string
	TransactionID string
	PaymentUUID   string
	Response      map[string]interface{}
}

// PayoutResult is the normalized outcome of a vendor payout call.
type PayoutResult struct {
	Success   bool
	Reference string
	Response  map[string]interface{}
}

// Driver is the contract every charge gateway implements. Drivers map
// provider vocabulary onto the canonical payment statuses; anything they
// do not recognize maps to pending, never to completed.
type Driver interface {
	Name() string
	Charge(payment *models.Payment) (*ChargeResult, error)
	Refund(payment *models.Payment, amount float64) (*RefundResult, error)
	HandleWebhook(r *http.Request) (*WebhookEvent, error)
}

// PayoutDriver sends vendor payouts through one provider.
type PayoutDriver interface {
	Provider() string
	SendPayout(vendor *models.Vendor, payout *models.VendorPayout) (*PayoutResult, error)
}

// Factory resolves payment method strings to singleton driver instances.
// New providers are wired in here and nowhere else.
type Factory struct {
	drivers       map[string]Driver
	payoutDrivers map[string]PayoutDriver
}

// NewFactory builds the closed driver registry from configuration.
func NewFactory(cfg *config.Config) *Factory {
	f := &Factory{
		drivers:       make(map[string]Driver),
		payoutDrivers: make(map[string]PayoutDriver),
	}

	for _, d := range []Driver{
		NewRazorpayDriver(cfg),
		NewPayPalDriver(cfg),
		NewCODDriver(),
	} {
		f.drivers[d.Name()] = d
	}

	for _, d := range []PayoutDriver{
		NewStripeConnectPayout(cfg),
		NewPayPalPayout(cfg),
		NewManualPayout(),
	} {
		f.payoutDrivers[d.Provider()] = d
	}

	return f
}

// Resolve returns the driver registered for the given payment method.
func (f *Factory) Resolve(method string) (Driver, error) {
	driver, ok := f.drivers[NormalizeMethod(method)]
	if !ok {
		return nil, ErrUnsupportedGateway
	}
	return driver, nil
}

// ResolvePayout returns the payout driver for the given provider.
func (f *Factory) ResolvePayout(provider string) (PayoutDriver, error) {
	driver, ok := f.payoutDrivers[NormalizeMethod(provider)]
	if !ok {
		return nil, ErrUnsupportedGateway
	}
	return driver, nil
}

// NormalizeMethod canonicalizes a payment method string for registry lookup.
func NormalizeMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}

// DetectPayoutProvider maps a vendor's configured payout method onto a
// registered payout provider, defaulting to manual for anything unrecognized.
func DetectPayoutProvider(payoutMethod string) string {
	switch NormalizeMethod(payoutMethod) {
	case "stripe", "stripe_connect":
		return models.PayoutProviderStripeConnect
	case "paypal", "paypal_payouts":
		return models.PayoutProviderPayPal
	default:
		return models.PayoutProviderManual
	}
}

// VerifySignature checks an HMAC-SHA256 hex signature over the raw webhook
// body. An empty secret disables verification (deployment choice). The
// comparison is constant time.
func VerifySignature(body []byte, signature, secret string) bool {
	if secret == "" {
		return true
	}
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
