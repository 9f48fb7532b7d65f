package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsEarnedForSale(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		price    int64
		quantity int
		want     int64
	}{
		{"one percent of sale", 500, 2, 10},
		{"floors fractional points", 199, 1, 1},
		{"below one point floors to zero", 99, 1, 0},
		{"zero price", 0, 5, 0},
		{"zero quantity", 500, 0, 0},
		{"negative price", -100, 1, 0},
		{"large sale", 100000, 3, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.PointsEarnedForSale(tt.price, tt.quantity))
		})
	}
}

func TestMaxRedeemable(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name    string
		total   int64
		balance int64
		want    int64
	}{
		{"balance below cap", 1000, 50, 50},
		{"balance above cap", 1000, 500, 100},
		{"balance equals cap", 1000, 100, 100},
		{"zero balance", 1000, 0, 0},
		{"negative balance", 1000, -10, 0},
		{"zero total", 0, 50, 0},
		{"cap floors", 199, 1000, 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.MaxRedeemable(tt.total, tt.balance))
		})
	}
}

func TestCustomRates(t *testing.T) {
	policy := Policy{EarnRateBP: 500, RedeemCapBP: 2500}

	// 5% earn rate
	assert.Equal(t, int64(50), policy.PointsEarnedForSale(1000, 1))
	// 25% redemption cap
	assert.Equal(t, int64(250), policy.MaxRedeemable(1000, 10000))
}
