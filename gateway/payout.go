package gateway

import (
	"context"
	"fmt"
	"math"
	"os"

	appconfig "github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"github.com/google/uuid"
	"github.com/plutov/paypal/v4"
	stripe "github.com/stripe/stripe-go/v76"
	stripeclient "github.com/stripe/stripe-go/v76/client"
)

// StripeConnectPayout transfers vendor earnings to a connected Stripe account.
type StripeConnectPayout struct {
	api *stripeclient.API
}

// NewStripeConnectPayout builds the Stripe Connect payout driver.
func NewStripeConnectPayout(cfg *appconfig.Config) *StripeConnectPayout {
	api := &stripeclient.API{}
	api.Init(cfg.StripeKey, nil)
	return &StripeConnectPayout{api: api}
}

// Provider implements PayoutDriver.
func (d *StripeConnectPayout) Provider() string {
	return models.PayoutProviderStripeConnect
}

// SendPayout creates a transfer to the vendor's connected account.
func (d *StripeConnectPayout) SendPayout(vendor *models.Vendor, payout *models.VendorPayout) (*PayoutResult, error) {
	params := &stripe.TransferParams{
		Amount:        stripe.Int64(int64(math.Round(payout.Amount * 100))),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		Destination:   stripe.String(vendor.PayoutAccount),
		TransferGroup: stripe.String(fmt.Sprintf("vendor_payout_%d", payout.ID)),
	}

	transfer, err := d.api.Transfers.New(params)
	if err != nil {
		utils.LogError("Stripe transfer failed for payout %d: %v", payout.ID, err)
		return &PayoutResult{
			Success:  false,
			Response: map[string]interface{}{"error": err.Error()},
		}, nil
	}

	return &PayoutResult{
		Success:   true,
		Reference: transfer.ID,
		Response: map[string]interface{}{
			"transfer_id": transfer.ID,
			"amount":      transfer.Amount,
		},
	}, nil
}

// PayPalPayout sends vendor earnings through the PayPal Payouts API.
type PayPalPayout struct {
	client *paypal.Client
}

// NewPayPalPayout builds the PayPal payout driver.
func NewPayPalPayout(cfg *appconfig.Config) *PayPalPayout {
	base := paypal.APIBaseSandBox
	if os.Getenv("PAYPAL_LIVE") == "true" {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalSecret, base)
	if err != nil {
		utils.LogError("Failed to initialize PayPal payout client: %v", err)
	}

	return &PayPalPayout{client: client}
}

// Provider implements PayoutDriver.
func (d *PayPalPayout) Provider() string {
	return models.PayoutProviderPayPal
}

// SendPayout creates a single-item payout batch to the vendor's PayPal account.
func (d *PayPalPayout) SendPayout(vendor *models.Vendor, payout *models.VendorPayout) (*PayoutResult, error) {
	if d.client == nil {
		return &PayoutResult{
			Success:  false,
			Response: map[string]interface{}{"error": "paypal client not configured"},
		}, nil
	}

	batch := paypal.Payout{
		SenderBatchHeader: &paypal.SenderBatchHeader{
			SenderBatchID: fmt.Sprintf("vendor_payout_%d", payout.ID),
			EmailSubject:  "You have a payout from MarketNest",
		},
		Items: []paypal.PayoutItem{
			{
				RecipientType: "EMAIL",
				Receiver:      vendor.PayoutAccount,
				Amount: &paypal.AmountPayout{
					Value:    fmt.Sprintf("%.2f", payout.Amount),
					Currency: "USD",
				},
				Note:         fmt.Sprintf("Earnings payout for %s", vendor.StoreName),
				SenderItemID: fmt.Sprintf("payout_item_%d", payout.ID),
			},
		},
	}

	resp, err := d.client.CreateSinglePayout(context.Background(), batch)
	if err != nil {
		utils.LogError("PayPal payout failed for payout %d: %v", payout.ID, err)
		return &PayoutResult{
			Success:  false,
			Response: map[string]interface{}{"error": err.Error()},
		}, nil
	}

	reference := ""
	response := map[string]interface{}{}
	if resp.BatchHeader != nil {
		reference = resp.BatchHeader.PayoutBatchID
		response["payout_batch_id"] = resp.BatchHeader.PayoutBatchID
		response["batch_status"] = resp.BatchHeader.BatchStatus
	}

	return &PayoutResult{
		Success:   true,
		Reference: reference,
		Response:  response,
	}, nil
}

// ManualPayout records payouts settled outside any provider (bank transfer,
// cheque). It succeeds immediately with a generated reference.
type ManualPayout struct{}

// NewManualPayout builds the manual payout driver.
func NewManualPayout() *ManualPayout {
	return &ManualPayout{}
}

// Provider implements PayoutDriver.
func (d *ManualPayout) Provider() string {
	return models.PayoutProviderManual
}

// SendPayout generates a reference for the offline settlement.
func (d *ManualPayout) SendPayout(vendor *models.Vendor, payout *models.VendorPayout) (*PayoutResult, error) {
	return &PayoutResult{
		Success:   true,
		Reference: fmt.Sprintf("manual_%s", uuid.New().String()),
		Response:  map[string]interface{}{"provider": "manual"},
	}, nil
}
