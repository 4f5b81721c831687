package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.0, Round2(10))
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, -10.56, Round2(-10.555))
	assert.Equal(t, 0.1, Round2(0.1))
	// Float artifacts collapse to clean cents.
	assert.Equal(t, 0.3, Round2(0.1+0.2))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 10.0, Percentage(100, 10))
	assert.Equal(t, 75.0, Percentage(300, 25))
	assert.Equal(t, 5.0, Percentage(33.33, 15))
	assert.Equal(t, 0.0, Percentage(100, 0))
	assert.Equal(t, 0.0, Percentage(0, 10))
	assert.Equal(t, 1.67, Percentage(16.65, 10))
}

func TestMoneyEquals(t *testing.T) {
	assert.True(t, MoneyEquals(10.00, 10))
	assert.True(t, MoneyEquals(0.1+0.2, 0.3))
	assert.True(t, MoneyEquals(10.555, 10.556))
	assert.False(t, MoneyEquals(10.55, 10.56))
	assert.False(t, MoneyEquals(100, 99.99))
}
