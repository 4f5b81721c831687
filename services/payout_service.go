package services

import (
	"time"

	"github.com/Rahul-714/MarketNest/gateway"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayoutService computes vendor balances, creates payout records, routes
// them to the configured provider, and runs the scheduled sweep.
type PayoutService struct {
	db       *gorm.DB
	factory  *gateway.Factory
	settings SettingsLoader
	now      func() time.Time
}

// NewPayoutService creates a new PayoutService.
func NewPayoutService(db *gorm.DB, factory *gateway.Factory, settings SettingsLoader) *PayoutService {
	return &PayoutService{db: db, factory: factory, settings: settings, now: time.Now}
}

// PayoutAmount resolves the amount to pay: the full available balance, or
// the requested amount capped at what is available.
func PayoutAmount(available float64, requested *float64) float64 {
	if requested == nil || *requested <= 0 || *requested > available {
		return available
	}
	return *requested
}

// IsEligibleForAutoPayout reports whether a payout cycle settles on the
// given day: weekly cycles on Sunday, monthly cycles on the last day of
// the month. Manual cycles never auto-settle.
func IsEligibleForAutoPayout(cycle string, day time.Time) bool {
	switch cycle {
	case models.PayoutCycleWeekly:
		return day.Weekday() == time.Sunday
	case models.PayoutCycleMonthly:
		return day.AddDate(0, 0, 1).Day() == 1
	default:
		return false
	}
}

// AvailableBalance sums unpaid earnings over ledger rows whose owning
// order has been paid.
func (s *PayoutService) AvailableBalance(vendorID uint) (float64, error) {
	var total float64
	err := s.db.Model(&models.VendorOrder{}).
		Joins("JOIN orders ON orders.id = vendor_orders.order_id").
		Where("vendor_orders.vendor_id = ?", vendorID).
		Where("vendor_orders.payout_status = ?", models.PayoutStatusPending).
		Where("orders.payment_status = ?", models.OrderPaymentPaid).
		Where("orders.deleted_at IS NULL").
		Select("COALESCE(SUM(vendor_orders.vendor_earnings), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, utils.WrapError(err, "failed to compute vendor balance")
	}
	return utils.Round2(total), nil
}

// CreatePendingPayout creates a pending payout for the vendor's payable
// balance. A nil payout with nil error means there is nothing to pay out.
func (s *PayoutService) CreatePendingPayout(vendorID uint, requested *float64) (*models.VendorPayout, error) {
	utils.LogInfo("CreatePendingPayout called for vendor %d", vendorID)

	var vendor models.Vendor
	if err := s.db.First(&vendor, vendorID).Error; err != nil {
		return nil, utils.WrapError(err, "failed to load vendor")
	}

	available, err := s.AvailableBalance(vendorID)
	if err != nil {
		return nil, err
	}
	if available <= 0 {
		utils.LogDebug("Vendor %d has no payable balance", vendorID)
		return nil, nil
	}

	payout := models.VendorPayout{
		VendorID: vendorID,
		Amount:   PayoutAmount(available, requested),
		Status:   models.VendorPayoutPending,
		Provider: gateway.DetectPayoutProvider(vendor.PayoutMethod),
	}
	if err := s.db.Create(&payout).Error; err != nil {
		return nil, utils.WrapError(err, "failed to create payout")
	}

	utils.LogInfo("Created pending payout %d for vendor %d, amount %.2f via %s",
		payout.ID, vendorID, payout.Amount, payout.Provider)
	return &payout, nil
}

// ProcessPayout routes a pending (or failed, for retry) payout through its
// provider. Failure marks the payout failed and leaves the ledger rows
// untouched so a retry can re-attempt; success marks the payout completed
// and flips the covered ledger rows to paid in the same transaction.
func (s *PayoutService) ProcessPayout(payoutID uint) error {
	utils.LogInfo("ProcessPayout called for payout %d", payoutID)

	var payout models.VendorPayout
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payout, payoutID).Error; err != nil {
			return utils.WrapError(err, "failed to load payout")
		}
		if payout.Status != models.VendorPayoutPending && payout.Status != models.VendorPayoutFailed {
			return ErrPayoutNotProcessable
		}
		payout.Status = models.VendorPayoutProcessing
		return tx.Save(&payout).Error
	})
	if err != nil {
		return err
	}

	var vendor models.Vendor
	if err := s.db.First(&vendor, payout.VendorID).Error; err != nil {
		return utils.WrapError(err, "failed to load vendor")
	}

	driver, err := s.factory.ResolvePayout(payout.Provider)
	if err != nil {
		return s.markPayoutFailed(&payout, map[string]interface{}{"error": err.Error()})
	}

	result, err := driver.SendPayout(&vendor, &payout)
	if err != nil {
		return s.markPayoutFailed(&payout, map[string]interface{}{"error": err.Error()})
	}
	if !result.Success {
		return s.markPayoutFailed(&payout, result.Response)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var locked models.VendorPayout
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, payout.ID).Error; err != nil {
			return utils.WrapError(err, "failed to load payout")
		}

		now := s.now()
		locked.Status = models.VendorPayoutCompleted
		locked.TransactionReference = result.Reference
		locked.ProcessedAt = &now
		locked.Meta = result.Response
		if err := tx.Save(&locked).Error; err != nil {
			return utils.WrapError(err, "failed to persist payout")
		}

		paidOrders := tx.Model(&models.Order{}).Select("id").
			Where("payment_status = ?", models.OrderPaymentPaid)
		if err := tx.Model(&models.VendorOrder{}).
			Where("vendor_id = ? AND payout_status = ?", locked.VendorID, models.PayoutStatusPending).
			Where("order_id IN (?)", paidOrders).
			Update("payout_status", models.PayoutStatusPaid).Error; err != nil {
			return utils.WrapError(err, "failed to mark ledger rows paid")
		}

		payout = locked
		return nil
	})
	if err != nil {
		return err
	}

	utils.LogInfo("Payout %d completed, reference %s", payout.ID, payout.TransactionReference)

	if err := utils.SendPayoutNotification(vendor.Email, vendor.StoreName, payout.Amount, payout.TransactionReference); err != nil {
		utils.LogError("Failed to notify vendor %d about payout %d: %v", vendor.ID, payout.ID, err)
	}

	return nil
}

// markPayoutFailed records a failed provider call; ledger rows stay pending
// so the payout can be retried.
func (s *PayoutService) markPayoutFailed(payout *models.VendorPayout, meta map[string]interface{}) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var locked models.VendorPayout
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, payout.ID).Error; err != nil {
			return utils.WrapError(err, "failed to load payout")
		}
		locked.Status = models.VendorPayoutFailed
		locked.Meta = meta
		if err := tx.Save(&locked).Error; err != nil {
			return utils.WrapError(err, "failed to persist payout failure")
		}
		*payout = locked
		return nil
	})
	if err != nil {
		return err
	}

	utils.LogError("Payout %d failed: %v", payout.ID, meta)
	return nil
}

// ProcessAutomaticPayouts runs the scheduled settlement sweep. It is a
// no-op unless automatic payouts are enabled. Vendors with no balance are
// skipped without counting as failures; the return value is the number of
// vendors successfully paid.
func (s *PayoutService) ProcessAutomaticPayouts() (int, error) {
	settings := s.settings()
	if !settings.AutoPayoutEnabled {
		utils.LogDebug("Automatic payouts disabled, skipping sweep")
		return 0, nil
	}

	var vendors []models.Vendor
	err := s.db.Where("status = ?", models.VendorStatusApproved).
		Where("payout_cycle IN ?", []string{models.PayoutCycleWeekly, models.PayoutCycleMonthly}).
		Find(&vendors).Error
	if err != nil {
		return 0, utils.WrapError(err, "failed to list vendors for sweep")
	}

	today := s.now()
	paid := 0
	for _, vendor := range vendors {
		if !IsEligibleForAutoPayout(vendor.PayoutCycle, today) {
			continue
		}

		payout, err := s.CreatePendingPayout(vendor.ID, nil)
		if err != nil {
			utils.LogError("Sweep: failed to create payout for vendor %d: %v", vendor.ID, err)
			continue
		}
		if payout == nil {
			continue
		}

		if err := s.ProcessPayout(payout.ID); err != nil {
			utils.LogError("Sweep: failed to process payout %d for vendor %d: %v", payout.ID, vendor.ID, err)
			continue
		}

		var processed models.VendorPayout
		if err := s.db.First(&processed, payout.ID).Error; err == nil &&
			processed.Status == models.VendorPayoutCompleted {
			paid++
		}
	}

	utils.LogInfo("Automatic payout sweep finished, %d vendors paid", paid)
	return paid, nil
}
