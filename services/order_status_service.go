package services

import (
	"time"

	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderTransitions is the fulfillment state machine kept as data so tests
// can enumerate it exhaustively. Cancelled and returned are terminal.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered, models.OrderStatusReturned},
	models.OrderStatusDelivered:  {models.OrderStatusReturned},
	models.OrderStatusCancelled:  {},
	models.OrderStatusReturned:   {},
}

// orderStatusOrder fixes the enumeration order for introspection callers.
var orderStatusOrder = []string{
	models.OrderStatusPending,
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
	models.OrderStatusReturned,
}

// OrderStatusService owns the guarded lifecycle of order fulfillment status,
// independent of payment status.
type OrderStatusService struct {
	db *gorm.DB
}

// NewOrderStatusService creates a new OrderStatusService.
func NewOrderStatusService(db *gorm.DB) *OrderStatusService {
	return &OrderStatusService{db: db}
}

// AllowedNextOrderStatuses returns the transitions permitted from a status.
func AllowedNextOrderStatuses(current string) []string {
	next, ok := orderTransitions[current]
	if !ok {
		return nil
	}
	return append([]string(nil), next...)
}

// AllStatuses lists every fulfillment status.
func (s *OrderStatusService) AllStatuses() []string {
	return append([]string(nil), orderStatusOrder...)
}

// AvailableStatuses lists the statuses the order may move to next.
func (s *OrderStatusService) AvailableStatuses(order *models.Order) []string {
	return AllowedNextOrderStatuses(order.Status)
}

// CanChangeStatus reports whether the transition is permitted. Self
// transitions are always rejected.
func (s *OrderStatusService) CanChangeStatus(order *models.Order, target string) bool {
	if target == order.Status {
		return false
	}
	for _, next := range AllowedNextOrderStatuses(order.Status) {
		if next == target {
			return true
		}
	}
	return false
}

// ChangeStatus applies a guarded fulfillment transition. The order row is
// locked for the duration of the transaction; a disallowed transition
// returns ErrTransitionNotAllowed without mutating anything, and any
// persistence failure rolls the whole change back.
func (s *OrderStatusService) ChangeStatus(orderID uint, target, actor string) error {
	utils.LogInfo("Order status change requested - order: %d, target: %s, actor: %s", orderID, target, actor)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			return utils.WrapError(err, "failed to load order")
		}

		if !s.CanChangeStatus(&order, target) {
			utils.LogError("Transition rejected for order %d: %s -> %s", order.ID, order.Status, target)
			return ErrTransitionNotAllowed
		}

		now := time.Now()
		order.Status = target
		switch target {
		case models.OrderStatusShipped:
			order.ShippedAt = &now
		case models.OrderStatusDelivered:
			order.DeliveredAt = &now
		case models.OrderStatusCancelled:
			order.CancelledAt = &now
		}

		if err := tx.Save(&order).Error; err != nil {
			return utils.WrapError(err, "failed to persist order status")
		}

		utils.LogInfo("Order %d moved to %s by %s", order.ID, target, actor)
		return nil
	})
}
