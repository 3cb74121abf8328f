package drivelog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/period"
	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/tool"
)

// basic-tier accounts only see their trailing history
const basicHistoryDays = 30

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// ListResult is one page of drive logs.
type ListResult struct {
	Logs     []models.DriveLog `json:"logs"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	// Clamped marks responses whose range was cut to the basic-tier window.
	Clamped bool `json:"clamped"`
}

// List pages the logs of a period. Non-premium accounts are clamped to the
// trailing 30 days regardless of the requested range.
func (s *Service) List(ctx context.Context, user *models.User, rng period.Range, page, pageSize int, now time.Time) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	start, end := rng.Start, rng.End
	clamped := false
	if !user.HasPremium(now) {
		floor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -basicHistoryDays)
		if start.Before(floor) {
			start = floor
			clamped = true
		}
	}

	q := s.db.WithContext(ctx).Model(&models.DriveLog{}).
		Where("user_id = ? AND log_date BETWEEN ? AND ?", user.ID, start, end)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count drive logs: %w", err)
	}
	var logs []models.DriveLog
	if err := q.Order("log_date DESC, created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list drive logs: %w", err)
	}
	return &ListResult{Logs: logs, Total: total, Page: page, PageSize: pageSize, Clamped: clamped}, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*models.DriveLog, error) {
	var l models.DriveLog
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Service) Create(ctx context.Context, l *models.DriveLog) error {
	if l.ID == "" {
		l.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create drive log: %w", err)
	}
	return nil
}

func (s *Service) Update(ctx context.Context, userID string, l *models.DriveLog) error {
	var existing models.DriveLog
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", l.ID, userID).First(&existing).Error; err != nil {
		return err
	}
	l.UserID = userID
	l.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(l).Error; err != nil {
		return fmt.Errorf("update drive log: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.DriveLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
