package services

import (
	"errors"

	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutService drives the post-checkout flow: charge the order's
// payment, then advance fulfillment and materialize the settlement ledger
// once the order is paid.
type CheckoutService struct {
	db         *gorm.DB
	payments   *PaymentService
	orders     *OrderStatusService
	settlement *SettlementService
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(db *gorm.DB, payments *PaymentService, orders *OrderStatusService, settlement *SettlementService) *CheckoutService {
	return &CheckoutService{db: db, payments: payments, orders: orders, settlement: settlement}
}

// PayOrder charges the order's payment record, creating it on first
// attempt and reusing it on retries, then finalizes if the charge
// completed synchronously.
func (s *CheckoutService) PayOrder(orderID uint, actor string) (*models.Payment, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return nil, utils.WrapError(err, "failed to load order")
	}

	payment, err := s.payments.GetOrCreatePayment(&order, func() string { return uuid.New().String() })
	if err != nil {
		return nil, err
	}

	if err := s.payments.ProcessPayment(payment.ID, actor); err != nil {
		return nil, err
	}

	if err := s.FinalizePaidOrder(order.ID, actor); err != nil {
		return nil, err
	}

	if err := s.db.First(payment, payment.ID).Error; err != nil {
		return nil, utils.WrapError(err, "failed to reload payment")
	}
	return payment, nil
}

// FinalizePaidOrder advances a paid order into processing and syncs the
// vendor settlement ledger. Safe to call for unpaid orders and on
// replayed events: the guard table rejects the repeat advance and the
// ledger sync is idempotent.
func (s *CheckoutService) FinalizePaidOrder(orderID uint, actor string) error {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return utils.WrapError(err, "failed to load order")
	}

	if order.PaymentStatus != models.OrderPaymentPaid {
		return nil
	}

	if err := s.orders.ChangeStatus(order.ID, models.OrderStatusProcessing, actor); err != nil {
		if !errors.Is(err, ErrTransitionNotAllowed) {
			return err
		}
		utils.LogDebug("Order %d already advanced past processing", order.ID)
	}

	return s.settlement.SyncFromOrder(order.ID)
}
