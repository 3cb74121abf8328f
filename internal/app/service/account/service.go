package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/notify"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/settings"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/googleauth"
	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/logctx"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/tool"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

type Service struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	cfg      *cfgpkg.Config
	settings *settings.Service
	notify   *notify.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, cfg *cfgpkg.Config, set *settings.Service, n *notify.Service) *Service {
	return &Service{db: db, log: log, cfg: cfg, settings: set, notify: n}
}

// FederatedSignIn finds or creates the account behind a verified Google
// identity. New accounts start a trial, get default configs and, when a
// referral code matches, are linked to their referrer.
func (s *Service) FederatedSignIn(ctx context.Context, info *googleauth.TokenInfo, referralCode string) (*models.User, bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", info.Email).First(&user).Error
	if err == nil {
		if user.ProfileImage == "" && info.Picture != "" {
			_ = s.db.WithContext(ctx).Model(&user).Update("profile_image", info.Picture).Error
		}
		return &user, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, fmt.Errorf("lookup account: %w", err)
	}

	now := time.Now()
	trialEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, s.cfg.Plans.TrialDays)
	user = models.User{
		ID:           tool.GenerateUUIDV7(),
		Email:        info.Email,
		Name:         info.Name,
		ProfileImage: info.Picture,
		Category:     types.UserCategoryTrial,
		PlanType:     types.PlanTierBasic,
		ValidUntil:   &trialEnd,
		SignedUpAt:   now,
		ReferralCode: tool.NewReferralCode(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if referralCode != "" {
			var referrer models.User
			if err := tx.Where("referral_code = ?", referralCode).First(&referrer).Error; err == nil {
				user.ReferredBy = &referrer.ID
				if err := s.notify.CreateTx(tx, referrer.ID,
					fmt.Sprintf("%s signed up with your referral code.", info.Name)); err != nil {
					return err
				}
			}
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		return s.settings.SeedDefaults(tx, user.ID)
	})
	if err != nil {
		return nil, false, err
	}
	logctx.FromCtx(ctx, s.log).Infow("account created", "user_id", user.ID, "referred", user.ReferredBy != nil)
	return &user, true, nil
}

// PasswordSignIn authenticates a legacy email/password account.
func (s *Service) PasswordSignIn(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if user.PasswordHash == "" {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &user, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile writes the editable profile fields.
func (s *Service) UpdateProfile(ctx context.Context, userID string, fields map[string]any) error {
	allowed := map[string]bool{
		"name": true, "whatsapp": true, "birth_date": true,
		"address": true, "profile_image": true, "last_seen_version": true,
	}
	updates := map[string]any{}
	for k, v := range fields {
		if allowed[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

// ChangePassword sets a new password and clears the temp flag.
func (s *Service) ChangePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]any{"password_hash": string(hash), "is_temp_password": false}).Error
}

// SetTempPassword generates a one-time password for an account and returns
// the plaintext for the admin to hand over.
func (s *Service) SetTempPassword(ctx context.Context, userID string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	plain := base64.RawURLEncoding.EncodeToString(buf)
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash temp password: %w", err)
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]any{"password_hash": string(hash), "is_temp_password": true})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return plain, nil
}
