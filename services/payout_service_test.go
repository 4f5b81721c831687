package services

import (
	"testing"
	"time"

	"github.com/Rahul-714/MarketNest/models"
	"github.com/stretchr/testify/assert"
)

func TestPayoutAmount(t *testing.T) {
	// No request pays the full balance.
	assert.Equal(t, 500.0, PayoutAmount(500, nil))

	// A valid request is honored.
	requested := 200.0
	assert.Equal(t, 200.0, PayoutAmount(500, &requested))

	// Requests over the balance are capped at the balance.
	requested = 600.0
	assert.Equal(t, 500.0, PayoutAmount(500, &requested))

	// Non-positive requests fall back to the full balance.
	requested = 0
	assert.Equal(t, 500.0, PayoutAmount(500, &requested))
	requested = -10
	assert.Equal(t, 500.0, PayoutAmount(500, &requested))
}

func TestIsEligibleForAutoPayoutWeekly(t *testing.T) {
	sunday := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Sunday, sunday.Weekday())

	assert.True(t, IsEligibleForAutoPayout(models.PayoutCycleWeekly, sunday))

	for d := 1; d <= 6; d++ {
		day := sunday.AddDate(0, 0, d)
		assert.False(t, IsEligibleForAutoPayout(models.PayoutCycleWeekly, day), "weekday %s", day.Weekday())
	}
}

func TestIsEligibleForAutoPayoutMonthly(t *testing.T) {
	assert.True(t, IsEligibleForAutoPayout(models.PayoutCycleMonthly,
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsEligibleForAutoPayout(models.PayoutCycleMonthly,
		time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)))
	// Leap year: February 28 is not the last day.
	assert.False(t, IsEligibleForAutoPayout(models.PayoutCycleMonthly,
		time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsEligibleForAutoPayout(models.PayoutCycleMonthly,
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))

	assert.False(t, IsEligibleForAutoPayout(models.PayoutCycleMonthly,
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsEligibleForAutoPayout(models.PayoutCycleMonthly,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestIsEligibleForAutoPayoutManualNever(t *testing.T) {
	// A manual cycle never settles automatically, not even on days that
	// satisfy both calendar rules.
	lastSunday := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Sunday, lastSunday.Weekday())

	assert.False(t, IsEligibleForAutoPayout(models.PayoutCycleManual, lastSunday))
	assert.False(t, IsEligibleForAutoPayout("", lastSunday))
	assert.False(t, IsEligibleForAutoPayout("quarterly", lastSunday))
}
