package models

import (
	"time"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// User is a driver account. Use SubscriptionActive / HasPremium to gate
// feature access instead of checking Category directly.
type User struct {
	ID           string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Email        string `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Name         string `gorm:"column:name;type:varchar(255)" json:"name"`
	Whatsapp     string `gorm:"column:whatsapp;type:varchar(32)" json:"whatsapp"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255)" json:"-"`
	// Category is the billing lifecycle state: trial, subscriber or expired.
	Category types.UserCategory `gorm:"column:category;type:varchar(32);not null;index" json:"category"`
	PlanType types.PlanTier     `gorm:"column:plan_type;type:varchar(32);not null;default:'basic'" json:"plan_type"`
	// ValidUntil is the last day (inclusive) the subscription or trial covers.
	ValidUntil      *time.Time          `gorm:"column:valid_until;type:date" json:"valid_until"`
	SignedUpAt      time.Time           `gorm:"column:signed_up_at" json:"signed_up_at"`
	PaymentMethod   types.PaymentMethod `gorm:"column:payment_method;type:varchar(32)" json:"payment_method"`
	LastSeenVersion string              `gorm:"column:last_seen_version;type:varchar(32)" json:"last_seen_version"`
	ProfileImage    string              `gorm:"column:profile_image;type:text" json:"profile_image"`
	BirthDate       *time.Time          `gorm:"column:birth_date;type:date" json:"birth_date"`
	Address         string              `gorm:"column:address;type:varchar(255)" json:"address"`
	// ReferralCode is the shareable code this user hands out.
	ReferralCode string `gorm:"column:referral_code;type:varchar(16);uniqueIndex" json:"referral_code"`
	// ReferredBy points at the user whose code was used at signup.
	ReferredBy *string `gorm:"column:referred_by;type:uuid" json:"referred_by"`
	// ReferralBalance counts pending referral discounts; consumed one per renewal.
	ReferralBalance    int       `gorm:"column:referral_balance;not null;default:0" json:"referral_balance"`
	ReferralBonusGiven bool      `gorm:"column:referral_bonus_given;not null;default:false" json:"referral_bonus_given"`
	IsTempPassword     bool      `gorm:"column:is_temp_password;not null;default:false" json:"is_temp_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "app_user"
}

// SubscriptionActive reports whether the account can use the product today.
func (u *User) SubscriptionActive(now time.Time) bool {
	if u == nil || u.Category == types.UserCategoryExpired {
		return false
	}
	if u.ValidUntil == nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !u.ValidUntil.Before(today)
}

// HasPremium reports whether premium features are unlocked. Trial accounts
// get the full feature set so they can evaluate it.
func (u *User) HasPremium(now time.Time) bool {
	if !u.SubscriptionActive(now) {
		return false
	}
	return u.Category == types.UserCategoryTrial || u.PlanType == types.PlanTierPremium
}
