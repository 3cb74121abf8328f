package maintenance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/settings"
	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/tool"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

type Service struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	settings *settings.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, set *settings.Service) *Service {
	return &Service{db: db, log: log, settings: set}
}

// Odometer is the configured starting reading plus every logged kilometer.
func (s *Service) Odometer(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).
		Model(&models.DriveLog{}).
		Select("COALESCE(SUM(distance_km), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum lifetime km: %w", err)
	}
	return s.settings.Float(ctx, userID, settings.KeyVehicleStartKM) + total, nil
}

// dailyRate is the trailing 30-day kilometer average.
func (s *Service) dailyRate(ctx context.Context, userID string, now time.Time) (float64, error) {
	var sum float64
	since := now.AddDate(0, 0, -30)
	err := s.db.WithContext(ctx).
		Model(&models.DriveLog{}).
		Select("COALESCE(SUM(distance_km), 0)").
		Where("user_id = ? AND log_date >= ?", userID, since).
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("sum trailing km: %w", err)
	}
	return sum / 30, nil
}

// ItemView is a maintenance item annotated with urgency and projection.
type ItemView struct {
	models.MaintenanceItem
	RemainingKM float64       `json:"remaining_km"`
	Urgency     types.Urgency `json:"urgency"`
	Projection  Projection    `json:"projection"`
}

// Overview is the maintenance screen payload.
type Overview struct {
	Odometer   float64    `json:"odometer"`
	RatePerDay float64    `json:"rate_per_day"`
	Items      []ItemView `json:"items"`
}

func (s *Service) Overview(ctx context.Context, userID string, now time.Time) (*Overview, error) {
	odometer, err := s.Odometer(ctx, userID)
	if err != nil {
		return nil, err
	}
	rate, err := s.dailyRate(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	var items []models.MaintenanceItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load maintenance items: %w", err)
	}

	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		remaining := it.TargetKM - odometer
		views = append(views, ItemView{
			MaintenanceItem: it,
			RemainingKM:     remaining,
			Urgency:         UrgencyFor(remaining),
			Projection:      Project(remaining, rate, now),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].RemainingKM < views[j].RemainingKM })

	return &Overview{Odometer: odometer, RatePerDay: rate, Items: views}, nil
}

// Top returns the n most urgent items for the dashboard.
func (s *Service) Top(ctx context.Context, userID string, n int, now time.Time) ([]ItemView, error) {
	ov, err := s.Overview(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if len(ov.Items) > n {
		return ov.Items[:n], nil
	}
	return ov.Items, nil
}

// Add creates an item due intervalKM from the current odometer.
func (s *Service) Add(ctx context.Context, userID, name string, intervalKM float64) (*models.MaintenanceItem, error) {
	odometer, err := s.Odometer(ctx, userID)
	if err != nil {
		return nil, err
	}
	item := &models.MaintenanceItem{
		ID:       tool.GenerateUUIDV7(),
		UserID:   userID,
		Name:     name,
		TargetKM: odometer + intervalKM,
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("create maintenance item: %w", err)
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, userID, id, name string, targetKM float64) error {
	res := s.db.WithContext(ctx).Model(&models.MaintenanceItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"name": name, "target_km": targetKM})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Complete closes an item: a history record is written and the item removed,
// in one transaction. Zero actualKM defaults to the current odometer.
func (s *Service) Complete(ctx context.Context, userID, id string, actualKM float64, cost decimal.Decimal, notes string, now time.Time) (*models.MaintenanceRecord, error) {
	if actualKM <= 0 {
		odometer, err := s.Odometer(ctx, userID)
		if err != nil {
			return nil, err
		}
		actualKM = odometer
	}

	var record *models.MaintenanceRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MaintenanceItem
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
			return err
		}
		record = &models.MaintenanceRecord{
			ID:          tool.GenerateUUIDV7(),
			UserID:      userID,
			ItemName:    item.Name,
			ServiceDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
			ServiceKM:   actualKM,
			Cost:        cost,
			Notes:       notes,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return nil, fmt.Errorf("complete maintenance item: %w", err)
	}
	return record, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.MaintenanceItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Service) History(ctx context.Context, userID string) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("service_date DESC, created_at DESC").
		Find(&records).Error
	return records, err
}
