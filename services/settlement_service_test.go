package services

import (
	"testing"

	"github.com/Rahul-714/MarketNest/models"
	"github.com/stretchr/testify/assert"
)

func vendorID(v uint) *uint { return &v }

func TestSumVendorTotalsGroupsByVendor(t *testing.T) {
	settings := Settings{GlobalCommissionRate: 10}
	vendors := map[uint]*models.Vendor{
		1: {ID: 1},
		2: {ID: 2, CommissionRate: rate(20)},
	}
	items := []models.OrderItem{
		{VendorID: vendorID(1), Subtotal: 120},
		{VendorID: vendorID(1), Subtotal: 80},
		{VendorID: vendorID(2), Subtotal: 300},
	}

	totals := SumVendorTotals(items, vendors, settings)

	assert.Len(t, totals, 2)

	// Vendor 1 at the 10% global rate: 200 subtotal, 20 commission, 180 earnings.
	assert.Equal(t, uint(1), totals[0].VendorID)
	assert.Equal(t, 200.0, totals[0].Subtotal)
	assert.Equal(t, 20.0, totals[0].CommissionAmount)
	assert.Equal(t, 180.0, totals[0].VendorEarnings)

	// Vendor 2 at its 20% override: 300 subtotal, 60 commission, 240 earnings.
	assert.Equal(t, uint(2), totals[1].VendorID)
	assert.Equal(t, 300.0, totals[1].Subtotal)
	assert.Equal(t, 60.0, totals[1].CommissionAmount)
	assert.Equal(t, 240.0, totals[1].VendorEarnings)
}

func TestSumVendorTotalsDropsItemsWithoutVendor(t *testing.T) {
	settings := Settings{GlobalCommissionRate: 10}
	items := []models.OrderItem{
		{Subtotal: 500},
		{VendorID: vendorID(3), Subtotal: 100},
	}

	totals := SumVendorTotals(items, map[uint]*models.Vendor{3: {ID: 3}}, settings)

	assert.Len(t, totals, 1)
	assert.Equal(t, uint(3), totals[0].VendorID)
	assert.Equal(t, 100.0, totals[0].Subtotal)
}

func TestSumVendorTotalsEmpty(t *testing.T) {
	totals := SumVendorTotals(nil, nil, Settings{GlobalCommissionRate: 10})
	assert.Empty(t, totals)
}

func TestSumVendorTotalsIsIdempotent(t *testing.T) {
	settings := Settings{GlobalCommissionRate: 12}
	vendors := map[uint]*models.Vendor{7: {ID: 7}}
	items := []models.OrderItem{
		{VendorID: vendorID(7), Subtotal: 49.99},
		{VendorID: vendorID(7), Subtotal: 19.99},
	}

	first := SumVendorTotals(items, vendors, settings)
	second := SumVendorTotals(items, vendors, settings)

	assert.Equal(t, first, second)
}

func TestSumVendorTotalsDeterministicOrder(t *testing.T) {
	settings := Settings{GlobalCommissionRate: 10}
	vendors := map[uint]*models.Vendor{1: {ID: 1}, 2: {ID: 2}, 3: {ID: 3}}
	items := []models.OrderItem{
		{VendorID: vendorID(3), Subtotal: 10},
		{VendorID: vendorID(1), Subtotal: 10},
		{VendorID: vendorID(2), Subtotal: 10},
	}

	totals := SumVendorTotals(items, vendors, settings)

	assert.Equal(t, uint(1), totals[0].VendorID)
	assert.Equal(t, uint(2), totals[1].VendorID)
	assert.Equal(t, uint(3), totals[2].VendorID)
}

func TestSumVendorTotalsMissingVendorRecordUsesGlobalRate(t *testing.T) {
	// An item can reference a vendor the lookup failed to load; settlement
	// still proceeds at the global rate.
	settings := Settings{GlobalCommissionRate: 10}
	items := []models.OrderItem{{VendorID: vendorID(9), Subtotal: 50}}

	totals := SumVendorTotals(items, map[uint]*models.Vendor{}, settings)

	assert.Len(t, totals, 1)
	assert.Equal(t, 5.0, totals[0].CommissionAmount)
	assert.Equal(t, 45.0, totals[0].VendorEarnings)
}
