package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/tool"
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// CreateTx inserts a notification inside an existing transaction. Billing
// uses this so the referrer bonus message commits with the renewal.
func (s *Service) CreateTx(tx *gorm.DB, userID, message string) error {
	n := models.Notification{
		ID:      tool.GenerateUUIDV7(),
		UserID:  userID,
		Message: message,
	}
	return tx.Create(&n).Error
}

func (s *Service) Create(ctx context.Context, userID, message string) error {
	return s.CreateTx(s.db.WithContext(ctx), userID, message)
}

// Broadcast inserts the same message for every account.
func (s *Service) Broadcast(ctx context.Context, message string) (int, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&models.User{}).Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("list users for broadcast: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	batch := make([]models.Notification, 0, len(ids))
	for _, id := range ids {
		batch = append(batch, models.Notification{
			ID:      tool.GenerateUUIDV7(),
			UserID:  id,
			Message: message,
		})
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&batch, 200).Error; err != nil {
		return 0, fmt.Errorf("broadcast notifications: %w", err)
	}
	return len(batch), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&out).Error
	return out, err
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}
