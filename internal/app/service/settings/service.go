package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/tool"
)

// Per-user configuration keys. Defaults are seeded at signup and the UI only
// ever writes known keys.
const (
	KeyWeeklyGoal             = "weekly_goal"
	KeyMonthlyGoal            = "monthly_goal"
	KeyVehicleStartKM         = "vehicle_start_km"
	KeyVehicleModel           = "vehicle_model"
	KeyVehicleYear            = "vehicle_year"
	KeyFuelPrice              = "fuel_price"
	KeyFuelConsumption        = "fuel_consumption"
	KeyDepreciationRate       = "depreciation_rate"
	KeyMaintenanceReserveRate = "maintenance_reserve_rate"
	KeyCustomAppName          = "custom_app_name"
	KeyGoalDismissedWeek      = "goal_dismissed_week"
)

// Defaults returns the config entries a fresh account starts with.
func Defaults() map[string]string {
	return map[string]string{
		KeyWeeklyGoal:             "0",
		KeyMonthlyGoal:            "0",
		KeyVehicleStartKM:         "0",
		KeyVehicleModel:           "",
		KeyVehicleYear:            "",
		KeyFuelPrice:              "5.89",
		KeyFuelConsumption:        "11.5",
		KeyDepreciationRate:       "0.07",
		KeyMaintenanceReserveRate: "0.05",
		KeyCustomAppName:          "",
		KeyGoalDismissedWeek:      "",
	}
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// SeedDefaults inserts missing default entries for a user. Safe to call more
// than once.
func (s *Service) SeedDefaults(tx *gorm.DB, userID string) error {
	entries := make([]models.ConfigEntry, 0, len(Defaults()))
	for k, v := range Defaults() {
		entries = append(entries, models.ConfigEntry{
			ID:     tool.GenerateUUIDV7(),
			UserID: userID,
			Key:    k,
			Value:  v,
		})
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoNothing: true,
	}).Create(&entries).Error
}

// Value returns the stored value, or def when the key is absent.
func (s *Service) Value(ctx context.Context, userID, key, def string) string {
	var entry models.ConfigEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		First(&entry).Error
	if err != nil {
		return def
	}
	return entry.Value
}

// Decimal parses the stored value as money, zero when absent or malformed.
func (s *Service) Decimal(ctx context.Context, userID, key string) decimal.Decimal {
	return money.Parse(s.Value(ctx, userID, key, ""))
}

// Float parses the stored value as a float, zero when absent or malformed.
func (s *Service) Float(ctx context.Context, userID, key string) float64 {
	f, err := strconv.ParseFloat(s.Value(ctx, userID, key, ""), 64)
	if err != nil {
		return 0
	}
	return f
}

// All returns every config entry of the user as a flat map.
func (s *Service) All(ctx context.Context, userID string) (map[string]string, error) {
	var entries []models.ConfigEntry
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load config entries: %w", err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out, nil
}

// Set upserts one config entry.
func (s *Service) Set(ctx context.Context, userID, key, value string) error {
	entry := models.ConfigEntry{
		ID:     tool.GenerateUUIDV7(),
		UserID: userID,
		Key:    key,
		Value:  value,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// SetMany upserts a batch of entries in one transaction.
func (s *Service) SetMany(ctx context.Context, userID string, values map[string]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range values {
			entry := models.ConfigEntry{
				ID:     tool.GenerateUUIDV7(),
				UserID: userID,
				Key:    k,
				Value:  v,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FixedCosts lists the user's recurring costs.
func (s *Service) FixedCosts(ctx context.Context, userID string) ([]models.FixedCost, error) {
	var costs []models.FixedCost
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&costs).Error
	return costs, err
}

func (s *Service) CreateFixedCost(ctx context.Context, cost *models.FixedCost) error {
	if cost.ID == "" {
		cost.ID = tool.GenerateUUIDV7()
	}
	return s.db.WithContext(ctx).Create(cost).Error
}

func (s *Service) UpdateFixedCost(ctx context.Context, userID, id string, name string, value decimal.Decimal, kind string) error {
	res := s.db.WithContext(ctx).Model(&models.FixedCost{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"name": name, "value": value, "kind": kind})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Service) DeleteFixedCost(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.FixedCost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
