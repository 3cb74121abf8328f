package support

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/tool"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// TicketView is a ticket with its conversation thread.
type TicketView struct {
	models.SupportTicket
	Messages []models.TicketMessage `json:"messages"`
}

func (s *Service) Create(ctx context.Context, userID, subject, message string) (*models.SupportTicket, error) {
	t := &models.SupportTicket{
		ID:      tool.GenerateUUIDV7(),
		UserID:  userID,
		Subject: subject,
		Message: message,
		Status:  types.TicketStatusOpen,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return t, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.SupportTicket, error) {
	var out []models.SupportTicket
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&out).Error
	return out, err
}

// Get loads one ticket with its thread. userID empty means admin access.
func (s *Service) Get(ctx context.Context, userID, id string) (*TicketView, error) {
	q := s.db.WithContext(ctx).Where("id = ?", id)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var t models.SupportTicket
	if err := q.First(&t).Error; err != nil {
		return nil, err
	}
	var msgs []models.TicketMessage
	if err := s.db.WithContext(ctx).
		Where("ticket_id = ?", t.ID).
		Order("created_at").
		Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("load ticket thread: %w", err)
	}
	return &TicketView{SupportTicket: t, Messages: msgs}, nil
}

// Reply appends a message. A user reply reopens the ticket; an admin reply
// marks it answered.
func (s *Service) Reply(ctx context.Context, userID, ticketID string, sender types.TicketSender, message string) (*models.TicketMessage, error) {
	var msg *models.TicketMessage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ?", ticketID)
		if userID != "" {
			q = q.Where("user_id = ?", userID)
		}
		var t models.SupportTicket
		if err := q.First(&t).Error; err != nil {
			return err
		}
		if t.Status == types.TicketStatusClosed {
			return fmt.Errorf("ticket is closed")
		}
		msg = &models.TicketMessage{
			ID:       tool.GenerateUUIDV7(),
			TicketID: t.ID,
			Sender:   sender,
			Message:  message,
		}
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		next := types.TicketStatusInProgress
		if sender == types.TicketSenderAdmin {
			next = types.TicketStatusAnswered
		}
		return tx.Model(&t).Update("status", next).Error
	})
	if err != nil {
		return nil, fmt.Errorf("reply to ticket: %w", err)
	}
	return msg, nil
}

func (s *Service) Close(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.SupportTicket{}).
		Where("id = ?", id).
		Update("status", types.TicketStatusClosed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAll pages every ticket for the admin inbox, open ones first.
func (s *Service) ListAll(ctx context.Context, status types.TicketStatus) ([]models.SupportTicket, error) {
	q := s.db.WithContext(ctx).Model(&models.SupportTicket{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.SupportTicket
	err := q.Order("updated_at DESC").Limit(200).Find(&out).Error
	return out, err
}

// PurgeClosed deletes closed tickets and their threads.
func (s *Service) PurgeClosed(ctx context.Context) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id IN (?)",
			tx.Model(&models.SupportTicket{}).Select("id").Where("status = ?", types.TicketStatusClosed),
		).Delete(&models.TicketMessage{}).Error; err != nil {
			return err
		}
		res := tx.Where("status = ?", types.TicketStatusClosed).Delete(&models.SupportTicket{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("purge closed tickets: %w", err)
	}
	return deleted, nil
}
