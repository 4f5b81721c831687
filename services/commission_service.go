package services

import (
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
)

// Commission is the split of one line item's subtotal between the
// marketplace and the selling vendor.
type Commission struct {
	Rate             float64 `json:"rate"`
	Subtotal         float64 `json:"subtotal"`
	CommissionAmount float64 `json:"commission_amount"`
	VendorEarnings   float64 `json:"vendor_earnings"`
}

// ResolveCommissionRate picks the applicable rate. Precedence, highest
// first: category override on the item's product, vendor override, global
// default from settings.
func ResolveCommissionRate(item *models.OrderItem, vendor *models.Vendor, settings Settings) float64 {
	if item != nil && item.Product.Category.CommissionRate != nil {
		return *item.Product.Category.CommissionRate
	}
	if vendor != nil && vendor.CommissionRate != nil {
		return *vendor.CommissionRate
	}
	if settings.GlobalCommissionRate > 0 {
		return settings.GlobalCommissionRate
	}
	return models.DefaultCommissionRate
}

// CalculateForItem splits a sold line item's subtotal into commission and
// vendor earnings. Pure calculation: no side effects, safe to call
// repeatedly and in parallel.
func CalculateForItem(item *models.OrderItem, vendor *models.Vendor, settings Settings) Commission {
	rate := ResolveCommissionRate(item, vendor, settings)
	subtotal := utils.Round2(item.Subtotal)
	commission := utils.Percentage(subtotal, rate)
	earnings := utils.Round2(subtotal - commission)

	return Commission{
		Rate:             rate,
		Subtotal:         subtotal,
		CommissionAmount: commission,
		VendorEarnings:   earnings,
	}
}
