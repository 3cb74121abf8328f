package gamification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/logctx"
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

// SeedCatalog upserts the badge catalog on startup.
func SeedCatalog(l *zap.SugaredLogger, db *gorm.DB) error {
	rows := make([]models.Achievement, 0, len(Catalog))
	for _, d := range Catalog {
		rows = append(rows, models.Achievement{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Icon:        d.Icon,
			Category:    d.Category,
			XP:          d.XP,
		})
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "icon", "category", "xp"}),
	}).Create(&rows).Error; err != nil {
		l.Errorf("badge catalog seed failed: %v", err)
		return err
	}
	return nil
}

func (s *Service) counters(ctx context.Context, userID string) (Counters, error) {
	var c Counters
	row := struct {
		Days    float64 `gorm:"column:days"`
		KM      float64 `gorm:"column:km"`
		Revenue float64 `gorm:"column:revenue"`
	}{}
	err := s.db.WithContext(ctx).
		Model(&models.DriveLog{}).
		Select("COUNT(*) AS days, COALESCE(SUM(distance_km),0) AS km, COALESCE(SUM(gross_earnings),0) AS revenue").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return c, fmt.Errorf("badge counters: %w", err)
	}
	var completed int64
	err = s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("user_id = ? AND status = ?", userID, types.AppointmentStatusCompleted).
		Count(&completed).Error
	if err != nil {
		return c, fmt.Errorf("badge counters: %w", err)
	}
	return Counters{
		DaysLogged:            row.Days,
		TotalKM:               row.KM,
		GrossRevenue:          row.Revenue,
		CompletedAppointments: float64(completed),
	}, nil
}

func (s *Service) unlockedSet(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load unlocked badges: %w", err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (s *Service) grant(ctx context.Context, userID string, badgeIDs []string) ([]string, error) {
	if len(badgeIDs) == 0 {
		return nil, nil
	}
	rows := make([]models.UserAchievement, 0, len(badgeIDs))
	for _, id := range badgeIDs {
		rows = append(rows, models.UserAchievement{
			ID:            tool.GenerateUUIDV7(),
			UserID:        userID,
			AchievementID: id,
			UnlockedAt:    time.Now(),
		})
	}
	// the unique index makes concurrent evaluation safe
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("grant badges: %w", err)
	}
	return badgeIDs, nil
}

// Evaluate checks the counters and unlocks any newly earned badges,
// including the meta badge once everything else is done. Re-running with
// unchanged counters grants nothing.
func (s *Service) Evaluate(ctx context.Context, userID string) ([]string, error) {
	c, err := s.counters(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.unlockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	newIDs := MissingGrants(EligibleBadges(c), unlocked)
	granted, err := s.grant(ctx, userID, newIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range granted {
		unlocked[id] = true
	}

	// meta badge once every other badge is in
	if !unlocked[BadgeLivingLegend] {
		all := true
		for _, def := range Catalog {
			if def.ID != BadgeLivingLegend && !unlocked[def.ID] {
				all = false
				break
			}
		}
		if all {
			meta, err := s.grant(ctx, userID, []string{BadgeLivingLegend})
			if err != nil {
				return nil, err
			}
			granted = append(granted, meta...)
		}
	}

	if len(granted) > 0 {
		logctx.FromCtx(ctx, s.log).Infow("badges unlocked", "user_id", userID, "badges", granted)
	}
	return granted, nil
}

// GrantEvent unlocks an event badge (e.g. first receipt issued).
func (s *Service) GrantEvent(ctx context.Context, userID, badgeID string) error {
	def, ok := defByID(badgeID)
	if !ok || def.Category != CategoryEvent {
		return fmt.Errorf("unknown event badge %q", badgeID)
	}
	_, err := s.grant(ctx, userID, []string{badgeID})
	return err
}

// BadgeView is a catalog entry with the user's unlock state and progress.
type BadgeView struct {
	models.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Seen       bool       `json:"seen"`
	Progress   int        `json:"progress"`
}

// List returns every badge with progress for the achievements screen.
func (s *Service) List(ctx context.Context, userID string) ([]BadgeView, error) {
	c, err := s.counters(ctx, userID)
	if err != nil {
		return nil, err
	}
	var grants []models.UserAchievement
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&grants).Error; err != nil {
		return nil, fmt.Errorf("load badge grants: %w", err)
	}
	byID := make(map[string]models.UserAchievement, len(grants))
	for _, g := range grants {
		byID[g.AchievementID] = g
	}

	unlockedCount := 0
	for _, def := range Catalog {
		if def.ID != BadgeLivingLegend && byID[def.ID].AchievementID != "" {
			unlockedCount++
		}
	}

	out := make([]BadgeView, 0, len(Catalog))
	for _, def := range Catalog {
		v := BadgeView{
			Achievement: models.Achievement{
				ID: def.ID, Name: def.Name, Description: def.Description,
				Icon: def.Icon, Category: def.Category, XP: def.XP,
			},
		}
		if g, ok := byID[def.ID]; ok {
			unlockedAt := g.UnlockedAt
			v.Unlocked, v.UnlockedAt, v.Seen = true, &unlockedAt, g.Seen
			v.Progress = 100
		} else {
			switch def.Category {
			case CategoryMeta:
				v.Progress = ProgressPercent(float64(unlockedCount), float64(len(Catalog)-1))
			case CategoryEvent:
				v.Progress = 0
			default:
				v.Progress = ProgressPercent(c.valueFor(def.Category), def.Target)
			}
		}
		out = append(out, v)
	}
	return out, nil
}

// Unseen returns freshly unlocked badges for the unlock feed.
func (s *Service) Unseen(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	var out []models.UserAchievement
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND seen = false", userID).
		Order("unlocked_at").
		Find(&out).Error
	return out, err
}

// MarkSeen flags the user's unlock feed as viewed.
func (s *Service) MarkSeen(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Model(&models.UserAchievement{}).
		Where("user_id = ? AND seen = false", userID).
		Update("seen", true).Error
}
