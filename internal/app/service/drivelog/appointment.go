package drivelog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/tool"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// PendingAppointments lists upcoming trips, soonest first.
func (s *Service) PendingAppointments(ctx context.Context, userID string) ([]models.Appointment, error) {
	var out []models.Appointment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, types.AppointmentStatusPending).
		Order("scheduled_at").
		Find(&out).Error
	return out, err
}

func (s *Service) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	if a.ID == "" {
		a.ID = tool.GenerateUUIDV7()
	}
	if a.Status == "" {
		a.Status = types.AppointmentStatusPending
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (s *Service) UpdateAppointment(ctx context.Context, userID string, a *models.Appointment) error {
	var existing models.Appointment
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", a.ID, userID).First(&existing).Error; err != nil {
		return err
	}
	a.UserID = userID
	a.Status = existing.Status
	a.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

// CompleteAppointment marks the trip done and books its value as a private
// ride on the day's drive log, both in one transaction. The synthetic log is
// returned so callers can re-evaluate badges.
func (s *Service) CompleteAppointment(ctx context.Context, userID, id string, now time.Time) (*models.Appointment, *models.DriveLog, error) {
	var (
		appt models.Appointment
		dlog *models.DriveLog
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&appt).Error; err != nil {
			return err
		}
		if appt.Status == types.AppointmentStatusCompleted {
			return fmt.Errorf("appointment already completed")
		}
		if err := tx.Model(&appt).Update("status", types.AppointmentStatusCompleted).Error; err != nil {
			return err
		}
		dlog = &models.DriveLog{
			ID:              tool.GenerateUUIDV7(),
			UserID:          userID,
			LogDate:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
			GrossEarnings:   appt.Value,
			EarningsPrivate: appt.Value,
			RidesPrivate:    1,
		}
		return tx.Create(dlog).Error
	})
	if err != nil {
		return nil, nil, fmt.Errorf("complete appointment: %w", err)
	}
	return &appt, dlog, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
