package services

import (
	"fmt"
	"time"

	"github.com/Rahul-714/MarketNest/gateway"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentTransitions is the payment state machine kept as data. Refunded is
// terminal; failed payments may be revived to pending for a manual retry.
var paymentTransitions = map[string][]string{
	models.PaymentStatusPending:           {models.PaymentStatusCompleted, models.PaymentStatusFailed},
	models.PaymentStatusCompleted:         {models.PaymentStatusRefunded, models.PaymentStatusPartiallyRefunded},
	models.PaymentStatusPartiallyRefunded: {models.PaymentStatusRefunded},
	models.PaymentStatusFailed:            {models.PaymentStatusPending},
	models.PaymentStatusRefunded:          {},
}

// paymentToOrderStatus synchronizes a payment status into the owning
// order's payment_status.
var paymentToOrderStatus = map[string]string{
	models.PaymentStatusPending:           models.OrderPaymentPending,
	models.PaymentStatusCompleted:         models.OrderPaymentPaid,
	models.PaymentStatusFailed:            models.OrderPaymentFailed,
	models.PaymentStatusRefunded:          models.OrderPaymentRefunded,
	models.PaymentStatusPartiallyRefunded: models.OrderPaymentPaid,
}

// PaymentService owns the guarded payment lifecycle, the charge and refund
// protocols, and webhook reconciliation. Webhook-driven and API-driven
// transitions share one code path so the guard table cannot be bypassed.
type PaymentService struct {
	db      *gorm.DB
	factory *gateway.Factory
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(db *gorm.DB, factory *gateway.Factory) *PaymentService {
	return &PaymentService{db: db, factory: factory}
}

// AllowedNextPaymentStatuses returns the transitions permitted from a status.
func AllowedNextPaymentStatuses(current string) []string {
	next, ok := paymentTransitions[current]
	if !ok {
		return nil
	}
	return append([]string(nil), next...)
}

// OrderPaymentStatusFor maps a payment status onto the owning order's
// payment_status.
func OrderPaymentStatusFor(paymentStatus string) string {
	if mapped, ok := paymentToOrderStatus[paymentStatus]; ok {
		return mapped
	}
	return models.OrderPaymentPending
}

// CanChangeStatus reports whether the transition is permitted. Self
// transitions are always rejected.
func (s *PaymentService) CanChangeStatus(payment *models.Payment, target string) bool {
	if target == payment.Status {
		return false
	}
	for _, next := range AllowedNextPaymentStatuses(payment.Status) {
		if next == target {
			return true
		}
	}
	return false
}

// transitionOptions tunes how applyTransition treats edge cases.
type transitionOptions struct {
	actor         string
	note          string
	payload       map[string]interface{}
	transactionID string
	// allowSame appends the audit entry and merges payload without moving
	// status (pending charge results, repeated partial refunds).
	allowSame bool
	// replayNoop treats a same-status transition as silent success
	// (webhook redeliveries).
	replayNoop bool
}

// applyTransition performs one guarded payment transition inside the given
// transaction. The payment and its order must already be locked.
func (s *PaymentService) applyTransition(tx *gorm.DB, payment *models.Payment, target string, opts transitionOptions) error {
	if target == payment.Status {
		if opts.replayNoop {
			utils.LogDebug("Payment %d already %s, treating replay as no-op", payment.ID, target)
			return nil
		}
		if !opts.allowSame {
			return ErrTransitionNotAllowed
		}
	} else if !s.CanChangeStatus(payment, target) {
		return ErrTransitionNotAllowed
	}

	now := time.Now()
	previous := payment.Status

	if target != previous {
		payment.Status = target
		switch target {
		case models.PaymentStatusCompleted:
			if payment.PaymentDate == nil {
				payment.PaymentDate = &now
			}
		case models.PaymentStatusRefunded, models.PaymentStatusPartiallyRefunded:
			if payment.RefundDate == nil {
				payment.RefundDate = &now
			}
		}
	}

	if opts.transactionID != "" {
		payment.TransactionID = opts.transactionID
	}

	payment.AppendAudit(models.AuditEntry{
		Actor:   opts.actor,
		From:    previous,
		To:      target,
		Note:    opts.note,
		Payload: opts.payload,
	})

	if err := tx.Save(payment).Error; err != nil {
		return utils.WrapError(err, "failed to persist payment")
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, payment.OrderID).Error; err != nil {
		return utils.WrapError(err, "failed to load order for payment sync")
	}
	order.PaymentStatus = OrderPaymentStatusFor(payment.Status)
	if err := tx.Save(&order).Error; err != nil {
		return utils.WrapError(err, "failed to sync order payment status")
	}

	utils.LogInfo("Payment %d: %s -> %s (actor: %s)", payment.ID, previous, payment.Status, opts.actor)
	return nil
}

// changeStatus loads and locks the payment, then applies one transition.
func (s *PaymentService) changeStatus(paymentID uint, target string, opts transitionOptions) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, paymentID).Error; err != nil {
			return utils.WrapError(err, "failed to load payment")
		}
		return s.applyTransition(tx, &payment, target, opts)
	})
}

// ChangeStatus applies a guarded payment transition with an audit note.
func (s *PaymentService) ChangeStatus(paymentID uint, target, actor, note string) error {
	return s.changeStatus(paymentID, target, transitionOptions{actor: actor, note: note})
}

// ProcessPayment runs the charge protocol: resolve the driver, charge, and
// fold the outcome back into the lifecycle. A driver error or panic forces
// the payment to failed with the diagnostic in the audit log; it is never
// propagated as a fault.
func (s *PaymentService) ProcessPayment(paymentID uint, actor string) error {
	utils.LogInfo("ProcessPayment called for payment %d", paymentID)

	var payment models.Payment
	if err := s.db.First(&payment, paymentID).Error; err != nil {
		return utils.WrapError(err, "failed to load payment")
	}

	driver, err := s.factory.Resolve(payment.PaymentMethod)
	if err != nil {
		return fmt.Errorf("%w: %s", gateway.ErrUnsupportedGateway, payment.PaymentMethod)
	}

	// Manual retry path: a failed payment is revived to pending before the
	// new charge attempt.
	if payment.Status == models.PaymentStatusFailed {
		if err := s.changeStatus(payment.ID, models.PaymentStatusPending, transitionOptions{
			actor: actor,
			note:  "charge retry",
		}); err != nil {
			return err
		}
		payment.Status = models.PaymentStatusPending
	}

	if payment.Status != models.PaymentStatusPending {
		return ErrTransitionNotAllowed
	}

	result := s.safeCharge(driver, &payment)

	opts := transitionOptions{
		actor:         actor,
		payload:       result.Response,
		transactionID: result.TransactionID,
		allowSame:     true,
	}
	if !result.Success {
		opts.note = "charge failed"
		return s.changeStatus(payment.ID, models.PaymentStatusFailed, opts)
	}

	return s.changeStatus(payment.ID, result.Status, opts)
}

// safeCharge invokes the driver and absorbs errors and panics into a failed
// charge result, so an attempt always resolves to a queryable state.
func (s *PaymentService) safeCharge(driver gateway.Driver, payment *models.Payment) (result *gateway.ChargeResult) {
	defer func() {
		if r := recover(); r != nil {
			utils.LogError("Gateway panic during charge of payment %d: %v", payment.ID, r)
			result = &gateway.ChargeResult{
				Success:  false,
				Status:   models.PaymentStatusFailed,
				Response: map[string]interface{}{"error": fmt.Sprintf("gateway panic: %v", r)},
			}
		}
	}()

	res, err := driver.Charge(payment)
	if err != nil {
		utils.LogError("Gateway error during charge of payment %d: %v", payment.ID, err)
		return &gateway.ChargeResult{
			Success:  false,
			Status:   models.PaymentStatusFailed,
			Response: map[string]interface{}{"error": err.Error()},
		}
	}
	return res
}

// Refund runs the refund protocol for a completed or partially refunded
// payment. The payment row stays locked across the gateway call so a
// competing refund or webhook cannot interleave between the money moving
// and the record of it; a gateway rejection surfaces as a domain error
// and leaves the payment untouched.
func (s *PaymentService) Refund(paymentID uint, amount float64, actor string) error {
	utils.LogInfo("Refund requested for payment %d, amount %.2f", paymentID, amount)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, paymentID).Error; err != nil {
			return utils.WrapError(err, "failed to load payment")
		}

		if err := ValidateRefund(&payment, amount); err != nil {
			return err
		}

		driver, err := s.factory.Resolve(payment.PaymentMethod)
		if err != nil {
			return fmt.Errorf("%w: %s", gateway.ErrUnsupportedGateway, payment.PaymentMethod)
		}

		result, err := driver.Refund(&payment, amount)
		if err != nil {
			return utils.WrapError(err, "gateway refund failed")
		}
		if !result.Success {
			return utils.UnprocessableError("gateway rejected the refund", fmt.Errorf("%v", result.Response["error"]))
		}

		target, err := applyRefund(&payment, amount)
		if err != nil {
			return err
		}
		now := time.Now()
		payment.RefundDate = &now

		return s.applyTransition(tx, &payment, target, transitionOptions{
			actor:     actor,
			note:      fmt.Sprintf("refund of %.2f", amount),
			payload:   result.Response,
			allowSame: true,
		})
	})
}

// applyRefund validates and folds a refund into the payment's cumulative
// refund amount, returning the status the payment should move to.
func applyRefund(payment *models.Payment, amount float64) (string, error) {
	if err := ValidateRefund(payment, amount); err != nil {
		return "", err
	}
	payment.RefundAmount = utils.Round2(payment.RefundAmount + amount)
	if payment.RefundAmount >= payment.Amount || utils.MoneyEquals(payment.RefundAmount, payment.Amount) {
		return models.PaymentStatusRefunded, nil
	}
	return models.PaymentStatusPartiallyRefunded, nil
}

// ValidateRefund checks that the payment is refundable and the amount is
// within the remaining balance.
func ValidateRefund(payment *models.Payment, amount float64) error {
	if payment.Status != models.PaymentStatusCompleted && payment.Status != models.PaymentStatusPartiallyRefunded {
		return ErrRefundNotAllowed
	}
	remaining := utils.Round2(payment.Amount - payment.RefundAmount)
	if amount <= 0 || utils.Round2(amount) > remaining {
		return ErrInvalidRefundAmount
	}
	return nil
}

// HandleWebhook reconciles a driver-normalized webhook event against the
// payment lifecycle. Events that match no payment are ignored; replays of
// an already-applied status succeed as no-ops.
func (s *PaymentService) HandleWebhook(method string, event *gateway.WebhookEvent) error {
	payment, err := s.locatePayment(event)
	if err != nil {
		return err
	}
	if payment == nil {
		utils.LogDebug("Webhook for %s matched no payment, ignoring", method)
		return nil
	}

	if gateway.NormalizeMethod(payment.PaymentMethod) != gateway.NormalizeMethod(method) {
		utils.LogError("Webhook provider %s does not match payment %d method %s", method, payment.ID, payment.PaymentMethod)
		return ErrGatewayMismatch
	}

	return s.changeStatus(payment.ID, event.Status, transitionOptions{
		actor:         fmt.Sprintf("webhook:%s", method),
		payload:       event.Response,
		transactionID: event.TransactionID,
		replayNoop:    true,
	})
}

// FindByKeys looks a payment up by transaction id, falling back to the
// payment uuid. Both keys empty, or no match, yields (nil, nil).
func (s *PaymentService) FindByKeys(transactionID, paymentUUID string) (*models.Payment, error) {
	return s.locatePayment(&gateway.WebhookEvent{
		TransactionID: transactionID,
		PaymentUUID:   paymentUUID,
	})
}

// locatePayment resolves a webhook event to a payment by transaction id,
// falling back to the payment uuid. A nil return with nil error means the
// event is unrelated and must be ignored.
func (s *PaymentService) locatePayment(event *gateway.WebhookEvent) (*models.Payment, error) {
	if event.TransactionID == "" && event.PaymentUUID == "" {
		return nil, nil
	}

	var payment models.Payment
	if event.TransactionID != "" {
		err := s.db.Where("transaction_id = ?", event.TransactionID).First(&payment).Error
		if err == nil {
			return &payment, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, utils.WrapError(err, "failed to look up payment by transaction id")
		}
	}

	if event.PaymentUUID != "" {
		err := s.db.Where("uuid = ?", event.PaymentUUID).First(&payment).Error
		if err == nil {
			return &payment, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, utils.WrapError(err, "failed to look up payment by uuid")
		}
	}

	return nil, nil
}

// GetOrCreatePayment returns the order's payment record, creating it on
// first use. Re-attempts reuse the same record.
func (s *PaymentService) GetOrCreatePayment(order *models.Order, uuidGen func() string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Where("order_id = ?", order.ID).First(&payment).Error
	if err == nil {
		return &payment, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, utils.WrapError(err, "failed to look up payment")
	}

	payment = models.Payment{
		OrderID:       order.ID,
		UUID:          uuidGen(),
		Amount:        order.Total,
		Status:        models.PaymentStatusPending,
		PaymentMethod: order.PaymentMethod,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, utils.WrapError(err, "failed to create payment")
	}
	return &payment, nil
}
