package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/notify"
	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/logctx"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/tool"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

type Service struct {
	db     *gorm.DB
	log    *zap.SugaredLogger
	cfg    *config.Config
	notify *notify.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, cfg *config.Config, n *notify.Service) *Service {
	return &Service{db: db, log: log, cfg: cfg, notify: n}
}

// RenewParams identifies the payer by user id or email and carries what the
// provider reported about the payment.
type RenewParams struct {
	UserID string
	Email  string
	Method types.PaymentMethod
	Amount decimal.Decimal
	// Tier is the explicit plan tag from provider metadata, may be empty.
	Tier types.PlanTier
	// Days overrides the renewal length; zero uses the configured default.
	Days int
}

// Renew extends the payer's subscription. Validity stacking, tier
// resolution, referral credit consumption and the one-time referrer bonus
// all commit in a single transaction.
func (s *Service) Renew(ctx context.Context, p RenewParams) (*models.User, error) {
	if p.UserID == "" && p.Email == "" {
		return nil, fmt.Errorf("renew: no user reference")
	}
	days := p.Days
	if days <= 0 {
		days = s.cfg.Plans.RenewalDays
	}
	now := time.Now()

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		if p.UserID != "" {
			q = q.Where("id = ?", p.UserID)
		} else {
			q = q.Where("email = ?", p.Email)
		}
		if err := q.First(&user).Error; err != nil {
			return fmt.Errorf("load payer: %w", err)
		}

		tier := InferTier(p.Tier, p.Amount, user.ReferralBalance)
		validUntil := NextValidUntil(user.ValidUntil, now, days)

		updates := map[string]any{
			"category":    types.UserCategorySubscriber,
			"plan_type":   tier,
			"valid_until": validUntil,
		}
		if p.Method != "" {
			updates["payment_method"] = p.Method
		}
		if ConsumesReferral(p.Amount, user.ReferralBalance) {
			updates["referral_balance"] = gorm.Expr("referral_balance - 1")
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return fmt.Errorf("update payer: %w", err)
		}

		// one-time bonus for whoever referred this payer
		if user.ReferredBy != nil && !user.ReferralBonusGiven {
			res := tx.Model(&models.User{}).
				Where("id = ?", *user.ReferredBy).
				Update("referral_balance", gorm.Expr("referral_balance + 1"))
			if res.Error != nil {
				return fmt.Errorf("credit referrer: %w", res.Error)
			}
			if res.RowsAffected > 0 {
				if err := s.notify.CreateTx(tx, *user.ReferredBy,
					"A driver you referred just subscribed. Your next renewal gets a discount."); err != nil {
					return fmt.Errorf("notify referrer: %w", err)
				}
			}
			if err := tx.Model(&user).Update("referral_bonus_given", true).Error; err != nil {
				return fmt.Errorf("mark referral bonus: %w", err)
			}
		}

		return tx.First(&user, "id = ?", user.ID).Error
	})
	if err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, s.log).Infow("subscription renewed",
		"user_id", user.ID, "tier", user.PlanType, "valid_until", user.ValidUntil, "method", p.Method)
	return &user, nil
}

// Status is the subscription summary shown to the driver.
type Status struct {
	Category      types.UserCategory  `json:"category"`
	PlanType      types.PlanTier      `json:"plan_type"`
	ValidUntil    *time.Time          `json:"valid_until"`
	DaysRemaining int                 `json:"days_remaining"`
	Active        bool                `json:"active"`
	PaymentMethod types.PaymentMethod `json:"payment_method"`
}

func (s *Service) Status(user *models.User, now time.Time) Status {
	st := Status{
		Category:      user.Category,
		PlanType:      user.PlanType,
		ValidUntil:    user.ValidUntil,
		Active:        user.SubscriptionActive(now),
		PaymentMethod: user.PaymentMethod,
	}
	if user.ValidUntil != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if d := int(user.ValidUntil.Sub(today).Hours() / 24); d > 0 {
			st.DaysRemaining = d
		}
	}
	return st
}

// PixAmount is what a Mercado Pago PIX charge should cost: half price when
// the driver holds referral credit.
func (s *Service) PixAmount(tier types.PlanTier, referralBalance int) decimal.Decimal {
	price := s.cfg.PlanPrice(tier)
	if referralBalance > 0 {
		price = money.Round(price.Div(decimal.NewFromInt(2)))
	}
	return price
}

// LogEvent records a webhook delivery before it is processed.
func (s *Service) LogEvent(ctx context.Context, provider types.PaymentMethod, eventType, externalID string, payload []byte) string {
	entry := models.PaymentEventLog{
		ID:         tool.GenerateUUIDV7(),
		Provider:   provider,
		EventType:  eventType,
		ExternalID: externalID,
		Payload:    payload,
	}
	if len(payload) == 0 {
		entry.Payload = []byte("{}")
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("payment event log failed", "err", err)
	}
	return entry.ID
}

// MarkEvent stores the processing outcome on a logged event.
func (s *Service) MarkEvent(ctx context.Context, id string, procErr error) {
	updates := map[string]any{"processed": procErr == nil}
	if procErr != nil {
		updates["error"] = procErr.Error()
	}
	if err := s.db.WithContext(ctx).Model(&models.PaymentEventLog{}).
		Where("id = ?", id).Updates(updates).Error; err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("payment event update failed", "err", err)
	}
}

// ExpireOverdue flips accounts whose validity lapsed to expired. Run daily.
func (s *Service) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("category <> ? AND valid_until IS NOT NULL AND valid_until < ?", types.UserCategoryExpired, today).
		Update("category", types.UserCategoryExpired)
	if res.Error != nil {
		return 0, fmt.Errorf("expire overdue accounts: %w", res.Error)
	}
	return res.RowsAffected, nil
}
