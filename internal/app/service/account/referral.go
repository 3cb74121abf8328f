package account

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// ReferralStats is the referral program summary for a driver.
type ReferralStats struct {
	Code          string          `json:"code"`
	Balance       int             `json:"balance"`
	TotalReferred int             `json:"total_referred"`
	Converted     int             `json:"converted"`
	// SavedAmount estimates the renewal discounts earned so far.
	SavedAmount decimal.Decimal `json:"saved_amount"`
	Latest      []ReferredUser  `json:"latest"`
}

type ReferredUser struct {
	Name       string             `json:"name"`
	Category   types.UserCategory `json:"category"`
	SignedUpAt string             `json:"signed_up_at"`
}

func (s *Service) ReferralStats(ctx context.Context, user *models.User) (*ReferralStats, error) {
	var referred []models.User
	if err := s.db.WithContext(ctx).
		Where("referred_by = ?", user.ID).
		Order("signed_up_at DESC").
		Find(&referred).Error; err != nil {
		return nil, fmt.Errorf("list referred users: %w", err)
	}

	stats := &ReferralStats{
		Code:    user.ReferralCode,
		Balance: user.ReferralBalance,
	}
	for _, r := range referred {
		stats.TotalReferred++
		if r.Category == types.UserCategorySubscriber {
			stats.Converted++
		}
		if len(stats.Latest) < 5 {
			stats.Latest = append(stats.Latest, ReferredUser{
				Name:       r.Name,
				Category:   r.Category,
				SignedUpAt: r.SignedUpAt.Format("2006-01-02"),
			})
		}
	}
	// each conversion is worth half a premium month
	half := s.cfg.PlanPrice(types.PlanTierPremium).Div(decimal.NewFromInt(2))
	stats.SavedAmount = money.Round(half.Mul(decimal.NewFromInt(int64(stats.Converted))))
	return stats, nil
}
