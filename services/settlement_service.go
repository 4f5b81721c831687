package services

import (
	"sort"

	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettlementService materializes per-vendor ledger rows from an order's
// items. Re-running settlement for the same order converges to the same
// totals instead of duplicating rows.
type SettlementService struct {
	db       *gorm.DB
	settings SettingsLoader
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(db *gorm.DB, settings SettingsLoader) *SettlementService {
	return &SettlementService{db: db, settings: settings}
}

// VendorTotals is the summed settlement for one vendor within one order.
type VendorTotals struct {
	VendorID         uint
	Subtotal         float64
	CommissionAmount float64
	VendorEarnings   float64
}

// SumVendorTotals groups marketplace items by vendor and sums the
// commission engine's output per group. Items without a vendor are not
// part of marketplace settlement and are dropped. The result is ordered
// by vendor id for deterministic processing.
func SumVendorTotals(items []models.OrderItem, vendors map[uint]*models.Vendor, settings Settings) []VendorTotals {
	grouped := make(map[uint]*VendorTotals)
	for i := range items {
		item := &items[i]
		if item.VendorID == nil {
			continue
		}
		vendorID := *item.VendorID

		totals, ok := grouped[vendorID]
		if !ok {
			totals = &VendorTotals{VendorID: vendorID}
			grouped[vendorID] = totals
		}

		result := CalculateForItem(item, vendors[vendorID], settings)
		totals.Subtotal = utils.Round2(totals.Subtotal + result.Subtotal)
		totals.CommissionAmount = utils.Round2(totals.CommissionAmount + result.CommissionAmount)
		totals.VendorEarnings = utils.Round2(totals.VendorEarnings + result.VendorEarnings)
	}

	out := make([]VendorTotals, 0, len(grouped))
	for _, totals := range grouped {
		out = append(out, *totals)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VendorID < out[j].VendorID })
	return out
}

// SyncFromOrder upserts one VendorOrder row per (vendor, order) pair with
// freshly summed totals. Idempotent by construction: the upsert key is the
// composite unique index, and totals are overwritten, never accumulated.
func (s *SettlementService) SyncFromOrder(orderID uint) error {
	utils.LogInfo("Settlement sync requested for order %d", orderID)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("OrderItems.Product.Category").
			First(&order, orderID).Error; err != nil {
			return utils.WrapError(err, "failed to load order for settlement")
		}

		vendors, err := s.loadVendors(tx, order.OrderItems)
		if err != nil {
			return err
		}

		settings := s.settings()
		for _, totals := range SumVendorTotals(order.OrderItems, vendors, settings) {
			row := models.VendorOrder{
				VendorID:         totals.VendorID,
				OrderID:          order.ID,
				Subtotal:         totals.Subtotal,
				CommissionAmount: totals.CommissionAmount,
				VendorEarnings:   totals.VendorEarnings,
				PayoutStatus:     models.PayoutStatusPending,
				ShippingMethod:   order.ShippingMethod,
			}

			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "vendor_id"}, {Name: "order_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"subtotal", "commission_amount", "vendor_earnings", "shipping_method", "updated_at",
				}),
			}).Create(&row).Error
			if err != nil {
				return utils.WrapError(err, "failed to upsert vendor order")
			}

			utils.LogDebug("Vendor order upserted - vendor: %d, order: %d, earnings: %.2f",
				totals.VendorID, order.ID, totals.VendorEarnings)
		}

		return nil
	})
}

// loadVendors fetches the vendors referenced by the order's items.
func (s *SettlementService) loadVendors(tx *gorm.DB, items []models.OrderItem) (map[uint]*models.Vendor, error) {
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]bool)
	for _, item := range items {
		if item.VendorID != nil && !seen[*item.VendorID] {
			seen[*item.VendorID] = true
			ids = append(ids, *item.VendorID)
		}
	}
	if len(ids) == 0 {
		return map[uint]*models.Vendor{}, nil
	}

	var vendors []models.Vendor
	if err := tx.Where("id IN ?", ids).Find(&vendors).Error; err != nil {
		return nil, utils.WrapError(err, "failed to load vendors")
	}

	out := make(map[uint]*models.Vendor, len(vendors))
	for i := range vendors {
		out[vendors[i].ID] = &vendors[i]
	}
	return out, nil
}
