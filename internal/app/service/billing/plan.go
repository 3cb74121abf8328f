package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

var (
	basicBandLow  = decimal.NewFromInt(8)
	basicBandHigh = decimal.NewFromInt(15)
	premiumFloor  = decimal.NewFromInt(19)
)

// InferTier resolves the plan tier of a payment. An explicit tag from
// provider metadata always wins; otherwise the tier is inferred from the
// amount, treating the basic price band as a discounted premium when the
// payer holds referral credit.
func InferTier(explicit types.PlanTier, amount decimal.Decimal, referralBalance int) types.PlanTier {
	if explicit.Valid() {
		return explicit
	}
	if amount.GreaterThanOrEqual(premiumFloor) {
		return types.PlanTierPremium
	}
	if amount.GreaterThan(basicBandLow) && amount.LessThan(basicBandHigh) {
		if referralBalance > 0 {
			return types.PlanTierPremium
		}
		return types.PlanTierBasic
	}
	return types.PlanTierPremium
}

// ConsumesReferral reports whether this payment spends one referral credit.
// Only discounted payments consume credit.
func ConsumesReferral(amount decimal.Decimal, referralBalance int) bool {
	return referralBalance > 0 &&
		amount.GreaterThan(decimal.Zero) &&
		amount.LessThan(basicBandHigh)
}

// NextValidUntil stacks a renewal on top of the remaining validity: the new
// period starts at the later of today and the current expiry.
func NextValidUntil(current *time.Time, now time.Time, days int) time.Time {
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if current != nil && current.After(base) {
		base = *current
	}
	return base.AddDate(0, 0, days)
}
