package services

import (
	"testing"

	"github.com/Rahul-714/MarketNest/models"
	"github.com/stretchr/testify/assert"
)

func TestOrderTransitionTable(t *testing.T) {
	svc := NewOrderStatusService(nil)

	allowed := map[string]map[string]bool{
		models.OrderStatusPending:    {models.OrderStatusProcessing: true, models.OrderStatusCancelled: true},
		models.OrderStatusProcessing: {models.OrderStatusShipped: true, models.OrderStatusCancelled: true},
		models.OrderStatusShipped:    {models.OrderStatusDelivered: true, models.OrderStatusReturned: true},
		models.OrderStatusDelivered:  {models.OrderStatusReturned: true},
		models.OrderStatusCancelled:  {},
		models.OrderStatusReturned:   {},
	}

	// Enumerate every (current, target) pair, including self transitions.
	for _, current := range svc.AllStatuses() {
		for _, target := range svc.AllStatuses() {
			order := &models.Order{Status: current}
			got := svc.CanChangeStatus(order, target)
			want := allowed[current][target] && current != target
			assert.Equal(t, want, got, "transition %s -> %s", current, target)
		}
	}
}

func TestOrderSelfTransitionsRejected(t *testing.T) {
	svc := NewOrderStatusService(nil)

	for _, status := range svc.AllStatuses() {
		order := &models.Order{Status: status}
		assert.False(t, svc.CanChangeStatus(order, status), "self transition from %s", status)
	}
}

func TestOrderTerminalStatesHaveNoExits(t *testing.T) {
	assert.Empty(t, AllowedNextOrderStatuses(models.OrderStatusCancelled))
	assert.Empty(t, AllowedNextOrderStatuses(models.OrderStatusReturned))
}

func TestOrderUnknownStatusHasNoTransitions(t *testing.T) {
	assert.Nil(t, AllowedNextOrderStatuses("garbage"))

	svc := NewOrderStatusService(nil)
	order := &models.Order{Status: "garbage"}
	assert.False(t, svc.CanChangeStatus(order, models.OrderStatusProcessing))
}

func TestAvailableStatusesMatchesTable(t *testing.T) {
	svc := NewOrderStatusService(nil)

	order := &models.Order{Status: models.OrderStatusShipped}
	assert.ElementsMatch(t,
		[]string{models.OrderStatusDelivered, models.OrderStatusReturned},
		svc.AvailableStatuses(order))
}

func TestAllStatusesComplete(t *testing.T) {
	svc := NewOrderStatusService(nil)
	assert.Len(t, svc.AllStatuses(), 6)
	assert.Contains(t, svc.AllStatuses(), models.OrderStatusPending)
	assert.Contains(t, svc.AllStatuses(), models.OrderStatusReturned)
}
