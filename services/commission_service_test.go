package services

import (
	"testing"

	"github.com/Rahul-714/MarketNest/models"
	"github.com/stretchr/testify/assert"
)

func rate(v float64) *float64 { return &v }

func TestResolveCommissionRatePrecedence(t *testing.T) {
	settings := Settings{GlobalCommissionRate: 7}

	item := &models.OrderItem{
		Product: models.Product{Category: models.Category{CommissionRate: rate(25)}},
	}
	vendor := &models.Vendor{CommissionRate: rate(18)}

	// Category override beats everything.
	assert.Equal(t, 25.0, ResolveCommissionRate(item, vendor, settings))

	// Without a category override the vendor override applies.
	item.Product.Category.CommissionRate = nil
	assert.Equal(t, 18.0, ResolveCommissionRate(item, vendor, settings))

	// Without either override the global rate applies.
	vendor.CommissionRate = nil
	assert.Equal(t, 7.0, ResolveCommissionRate(item, vendor, settings))

	// Unset global falls back to the built-in default.
	assert.Equal(t, models.DefaultCommissionRate, ResolveCommissionRate(item, vendor, Settings{}))

	// Missing item and vendor degrade gracefully.
	assert.Equal(t, 7.0, ResolveCommissionRate(nil, nil, settings))
}

func TestCalculateForItemCategoryOverride(t *testing.T) {
	settings := Settings{GlobalCommissionRate: 7}
	item := &models.OrderItem{
		Subtotal: 300,
		Product:  models.Product{Category: models.Category{CommissionRate: rate(25)}},
	}
	vendor := &models.Vendor{CommissionRate: rate(18)}

	result := CalculateForItem(item, vendor, settings)

	assert.Equal(t, 25.0, result.Rate)
	assert.Equal(t, 300.0, result.Subtotal)
	assert.Equal(t, 75.0, result.CommissionAmount)
	assert.Equal(t, 225.0, result.VendorEarnings)
}

func TestCalculateForItemGlobalRate(t *testing.T) {
	settings := Settings{GlobalCommissionRate: 10}
	item := &models.OrderItem{Subtotal: 100}

	result := CalculateForItem(item, nil, settings)

	assert.Equal(t, 10.0, result.Rate)
	assert.Equal(t, 10.0, result.CommissionAmount)
	assert.Equal(t, 90.0, result.VendorEarnings)
}

func TestCalculateForItemRounding(t *testing.T) {
	settings := Settings{GlobalCommissionRate: 15}
	item := &models.OrderItem{Subtotal: 33.33}

	result := CalculateForItem(item, nil, settings)

	// 15% of 33.33 is 4.9995, rounded half-up to 5.00.
	assert.Equal(t, 5.0, result.CommissionAmount)
	assert.Equal(t, 28.33, result.VendorEarnings)
	assert.Equal(t, result.Subtotal, result.CommissionAmount+result.VendorEarnings)
}

func TestCalculateForItemIsPure(t *testing.T) {
	settings := Settings{GlobalCommissionRate: 10}
	item := &models.OrderItem{Subtotal: 250}

	first := CalculateForItem(item, nil, settings)
	second := CalculateForItem(item, nil, settings)

	assert.Equal(t, first, second)
	assert.Equal(t, 250.0, item.Subtotal)
}
