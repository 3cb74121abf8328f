package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInferTier(t *testing.T) {
	cases := []struct {
		name     string
		explicit types.PlanTier
		amount   string
		balance  int
		want     types.PlanTier
	}{
		{name: "explicit basic wins", explicit: types.PlanTierBasic, amount: "19.90", want: types.PlanTierBasic},
		{name: "explicit premium wins", explicit: types.PlanTierPremium, amount: "9.90", want: types.PlanTierPremium},
		{name: "premium price", amount: "19.90", want: types.PlanTierPremium},
		{name: "basic price", amount: "9.90", want: types.PlanTierBasic},
		{name: "basic band excludes upper edge", amount: "15.00", want: types.PlanTierPremium},
		{name: "basic band excludes lower edge", amount: "8.00", want: types.PlanTierPremium},
		{name: "basic price with referral credit is discounted premium", amount: "9.90", balance: 1, want: types.PlanTierPremium},
		{name: "below basic band defaults premium", amount: "5.00", want: types.PlanTierPremium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := InferTier(tc.explicit, dec(tc.amount), tc.balance)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConsumesReferral(t *testing.T) {
	assert.True(t, ConsumesReferral(dec("9.90"), 1))
	assert.False(t, ConsumesReferral(dec("9.90"), 0))
	assert.False(t, ConsumesReferral(dec("19.90"), 1))
	assert.False(t, ConsumesReferral(decimal.Zero, 1))
}

func TestNextValidUntilStacksOnFutureExpiry(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	future := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC) // 10 days out
	got := NextValidUntil(&future, now, 30)
	assert.Equal(t, "2026-10-05", got.Format("2006-01-02"))
}

func TestNextValidUntilFromTodayWhenLapsed(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	past := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	got := NextValidUntil(&past, now, 30)
	assert.Equal(t, "2026-09-25", got.Format("2006-01-02"))

	got = NextValidUntil(nil, now, 30)
	assert.Equal(t, "2026-09-25", got.Format("2006-01-02"))
}
