package account

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// UserListResult is a page of accounts plus per-category counts.
type UserListResult struct {
	Users    []models.User                `json:"users"`
	Total    int64                        `json:"total"`
	Counts   map[types.UserCategory]int64 `json:"counts"`
	Page     int                          `json:"page"`
	PageSize int                          `json:"page_size"`
}

// ListUsers pages accounts, optionally filtered with column filters.
func (s *Service) ListUsers(ctx context.Context, filters []types.CommonFilter, page, pageSize int) (*UserListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	q := s.db.WithContext(ctx).Model(&models.User{})
	for i := range filters {
		q = q.Where(&filters[i])
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	var users []models.User
	if err := q.Order("signed_up_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	counts := map[types.UserCategory]int64{}
	rows := []struct {
		Category types.UserCategory `gorm:"column:category"`
		N        int64              `gorm:"column:n"`
	}{}
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Select("category, COUNT(*) AS n").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	for _, r := range rows {
		counts[r.Category] = r.N
	}
	return &UserListResult{Users: users, Total: total, Counts: counts, Page: page, PageSize: pageSize}, nil
}

// SetCategory moves an account between lifecycle states.
func (s *Service) SetCategory(ctx context.Context, userID string, category types.UserCategory) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("category", category)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Expire ends an account's validity immediately.
func (s *Service) Expire(ctx context.Context, userID string, now time.Time) error {
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"category": types.UserCategoryExpired, "valid_until": yesterday})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an account and everything it owns in one transaction.
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		// ticket replies hang off tickets, remove them first
		if err := tx.Where("ticket_id IN (?)",
			tx.Model(&models.SupportTicket{}).Select("id").Where("user_id = ?", userID),
		).Delete(&models.TicketMessage{}).Error; err != nil {
			return err
		}
		owned := []any{
			&models.DriveLog{},
			&models.MaintenanceItem{},
			&models.MaintenanceRecord{},
			&models.Appointment{},
			&models.ConfigEntry{},
			&models.FixedCost{},
			&models.Notification{},
			&models.SupportTicket{},
			&models.UserAchievement{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}
		// detach anyone referred by this account
		if err := tx.Model(&models.User{}).
			Where("referred_by = ?", userID).
			Update("referred_by", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
