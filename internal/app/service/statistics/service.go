package statistics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/tool"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// Statistic types served by the admin business-metrics endpoint.
type StatisticType string

const (
	StatisticTypeFleetTotals     StatisticType = "fleet_totals"
	StatisticTypeRevenue         StatisticType = "revenue"
	StatisticTypeEngagement      StatisticType = "engagement"
	StatisticTypeChurnRisk       StatisticType = "churn_risk"
	StatisticTypeTopDrivers      StatisticType = "top_drivers"
	StatisticTypeSourceShare     StatisticType = "source_share"
	StatisticTypeSignupGrowth    StatisticType = "signup_growth"
	StatisticTypeSubscriberTrend StatisticType = "subscriber_trend"
)

// AllStatisticTypes is the default set for the business-metrics endpoint.
var AllStatisticTypes = []StatisticType{
	StatisticTypeFleetTotals,
	StatisticTypeRevenue,
	StatisticTypeEngagement,
	StatisticTypeChurnRisk,
	StatisticTypeTopDrivers,
	StatisticTypeSourceShare,
	StatisticTypeSignupGrowth,
	StatisticTypeSubscriberTrend,
}

// provider fee withheld from gross MRR
var feeFactor = decimal.NewFromFloat(0.96)

// Service computes the admin business metrics.
type Service struct {
	db  *gorm.DB
	cfg *cfgpkg.Config
}

func New(db *gorm.DB, cfg *cfgpkg.Config) *Service { return &Service{db: db, cfg: cfg} }

// FleetTotals aggregates the whole fleet's activity.
type FleetTotals struct {
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalKM       float64         `json:"total_km"`
	RunningCosts  decimal.Decimal `json:"running_costs"`
	RevenuePerKM  decimal.Decimal `json:"revenue_per_km"`
	CostPerKM     decimal.Decimal `json:"cost_per_km"`
	DaysLogged    int64           `json:"days_logged"`
	ActiveDrivers int64           `json:"active_drivers"`
}

func (s *Service) getFleetTotals(ctx context.Context) (*FleetTotals, error) {
	row := struct {
		Gross   decimal.Decimal `gorm:"column:gross"`
		KM      float64         `gorm:"column:km"`
		Costs   decimal.Decimal `gorm:"column:costs"`
		Days    int64           `gorm:"column:days"`
		Drivers int64           `gorm:"column:drivers"`
	}{}
	err := s.db.WithContext(ctx).
		Model(&models.DriveLog{}).
		Select(`COALESCE(SUM(gross_earnings),0) AS gross,
			COALESCE(SUM(distance_km),0) AS km,
			COALESCE(SUM(expense_fuel + expense_maintenance),0) AS costs,
			COUNT(*) AS days,
			COUNT(DISTINCT user_id) AS drivers`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	ft := &FleetTotals{
		TotalGross:    row.Gross,
		TotalKM:       row.KM,
		RunningCosts:  row.Costs,
		DaysLogged:    row.Days,
		ActiveDrivers: row.Drivers,
	}
	if row.KM > 0 {
		km := decimal.NewFromFloat(row.KM)
		ft.RevenuePerKM = money.Round(row.Gross.Div(km))
		ft.CostPerKM = money.Round(row.Costs.Div(km))
	}
	return ft, nil
}

// Revenue is the subscription economics rollup.
type Revenue struct {
	Subscribers     int64                        `json:"subscribers"`
	ByTier          map[types.PlanTier]int64     `json:"by_tier"`
	ByMethod        map[types.PaymentMethod]int64 `json:"by_method"`
	DiscountHolders int64                        `json:"discount_holders"`
	GrossMRR        decimal.Decimal              `json:"gross_mrr"`
	NetMRR          decimal.Decimal              `json:"net_mrr"`
	ARR             decimal.Decimal              `json:"arr"`
	AvgTicket       decimal.Decimal              `json:"avg_ticket"`
	LTV             decimal.Decimal              `json:"ltv"`
}

func (s *Service) getRevenue(ctx context.Context) (*Revenue, error) {
	rows := []struct {
		Tier       types.PlanTier      `gorm:"column:plan_type"`
		Method     types.PaymentMethod `gorm:"column:payment_method"`
		Discounted bool                `gorm:"column:discounted"`
		N          int64               `gorm:"column:n"`
	}{}
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("plan_type, payment_method, referral_balance > 0 AS discounted, COUNT(*) AS n").
		Where("category = ?", types.UserCategorySubscriber).
		Group("plan_type, payment_method, discounted").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	rev := &Revenue{
		ByTier:   map[types.PlanTier]int64{},
		ByMethod: map[types.PaymentMethod]int64{},
	}
	half := decimal.NewFromFloat(0.5)
	for _, r := range rows {
		rev.Subscribers += r.N
		rev.ByTier[r.Tier] += r.N
		rev.ByMethod[r.Method] += r.N
		price := s.cfg.PlanPrice(r.Tier)
		if r.Discounted {
			rev.DiscountHolders += r.N
			price = price.Mul(half)
		}
		rev.GrossMRR = rev.GrossMRR.Add(price.Mul(decimal.NewFromInt(r.N)))
	}
	rev.GrossMRR = money.Round(rev.GrossMRR)
	rev.NetMRR = money.Round(rev.GrossMRR.Mul(feeFactor))
	rev.ARR = money.Round(rev.NetMRR.Mul(decimal.NewFromInt(12)))
	if rev.Subscribers > 0 {
		rev.AvgTicket = money.Round(rev.NetMRR.Div(decimal.NewFromInt(rev.Subscribers)))
		// LTV assumes a six-month average subscriber lifetime
		rev.LTV = money.Round(rev.AvgTicket.Mul(decimal.NewFromInt(6)))
	}
	return rev, nil
}

// Engagement is daily/monthly active drivers and stickiness.
type Engagement struct {
	DAU        int64   `json:"dau"`
	MAU        int64   `json:"mau"`
	Stickiness float64 `json:"stickiness"`
}

func (s *Service) getEngagement(ctx context.Context, now time.Time) (*Engagement, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var dau, mau int64
	err := s.db.WithContext(ctx).Model(&models.DriveLog{}).
		Where("log_date = ?", today).
		Distinct("user_id").Count(&dau).Error
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(&models.DriveLog{}).
		Where("log_date >= ?", today.AddDate(0, 0, -30)).
		Distinct("user_id").Count(&mau).Error
	if err != nil {
		return nil, err
	}
	e := &Engagement{DAU: dau, MAU: mau}
	if mau < 1 {
		e.MAU = 1
	}
	e.Stickiness = float64(dau) * 100 / float64(e.MAU)
	return e, nil
}

// ChurnRiskUser is a paying account that went quiet.
type ChurnRiskUser struct {
	UserID  string `gorm:"column:user_id" json:"user_id"`
	Name    string `gorm:"column:name" json:"name"`
	Email   string `gorm:"column:email" json:"email"`
	LastLog string `gorm:"column:last_log" json:"last_log"`
}

func (s *Service) getChurnRisk(ctx context.Context, now time.Time) ([]ChurnRiskUser, error) {
	cutoff := now.AddDate(0, 0, -7)
	var out []ChurnRiskUser
	err := s.db.WithContext(ctx).Raw(`
SELECT u.id AS user_id, u.name, u.email,
       COALESCE(TO_CHAR(MAX(d.log_date), 'YYYY-MM-DD'), 'never') AS last_log
FROM app_user u
LEFT JOIN drive_log d ON d.user_id = u.id
WHERE u.category = ?
GROUP BY u.id, u.name, u.email
HAVING MAX(d.log_date) IS NULL OR MAX(d.log_date) < ?
ORDER BY MAX(d.log_date) NULLS FIRST
`, types.UserCategorySubscriber, cutoff).Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TopDriver is one row of the gross-earnings leaderboard.
type TopDriver struct {
	UserID string          `gorm:"column:user_id" json:"user_id"`
	Name   string          `gorm:"column:name" json:"name"`
	Gross  decimal.Decimal `gorm:"column:gross" json:"gross"`
	KM     float64         `gorm:"column:km" json:"km"`
}

func (s *Service) getTopDrivers(ctx context.Context) ([]TopDriver, error) {
	var out []TopDriver
	err := s.db.WithContext(ctx).Raw(`
SELECT u.id AS user_id, u.name,
       COALESCE(SUM(d.gross_earnings),0) AS gross,
       COALESCE(SUM(d.distance_km),0) AS km
FROM app_user u
JOIN drive_log d ON d.user_id = u.id
GROUP BY u.id, u.name
ORDER BY gross DESC
LIMIT 5
`).Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SourceShare is the fleet-wide earnings split per ride-hailing app.
type SourceShare struct {
	Source   string          `json:"source"`
	Earnings decimal.Decimal `json:"earnings"`
	Share    float64         `json:"share"`
}

func (s *Service) getSourceShare(ctx context.Context) ([]SourceShare, error) {
	row := struct {
		Uber    decimal.Decimal `gorm:"column:uber"`
		Pop99   decimal.Decimal `gorm:"column:pop99"`
		Private decimal.Decimal `gorm:"column:private"`
		Other   decimal.Decimal `gorm:"column:other"`
	}{}
	err := s.db.WithContext(ctx).Model(&models.DriveLog{}).
		Select(`COALESCE(SUM(earnings_uber),0) AS uber,
			COALESCE(SUM(earnings_pop99),0) AS pop99,
			COALESCE(SUM(earnings_private),0) AS private,
			COALESCE(SUM(earnings_other),0) AS other`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	total := row.Uber.Add(row.Pop99).Add(row.Private).Add(row.Other)
	shares := []SourceShare{
		{Source: "uber", Earnings: row.Uber},
		{Source: "pop99", Earnings: row.Pop99},
		{Source: "private", Earnings: row.Private},
		{Source: "other", Earnings: row.Other},
	}
	if !total.IsZero() {
		for i := range shares {
			f, _ := shares[i].Earnings.Mul(decimal.NewFromInt(100)).Div(total).Round(1).Float64()
			shares[i].Share = f
		}
	}
	return shares, nil
}

// GrowthPoint is one day of the signup series, zero-filled.
type GrowthPoint struct {
	Date  string `gorm:"column:date" json:"date"`
	Value int64  `gorm:"column:value" json:"value"`
}

func (s *Service) getSignupGrowth(ctx context.Context) ([]GrowthPoint, error) {
	var out []GrowthPoint
	err := s.db.WithContext(ctx).Raw(`
WITH days AS (
    SELECT generate_series(CURRENT_DATE - INTERVAL '15 days', CURRENT_DATE, '1 day'::interval) AS day
)
SELECT TO_CHAR(d.day, 'YYYY-MM-DD') AS date, COUNT(u.id) AS value
FROM days d
LEFT JOIN app_user u ON DATE(u.signed_up_at) = d.day
GROUP BY d.day
ORDER BY d.day
`).Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) getSubscriberTrend(ctx context.Context) ([]models.SubscriberSnapshot, error) {
	var out []models.SubscriberSnapshot
	err := s.db.WithContext(ctx).
		Order("snapshot_date DESC, category, plan_tier").
		Limit(16 * 6).
		Find(&out).Error
	return out, err
}

func (s *Service) getStatistic(ctx context.Context, id StatisticType, now time.Time) (any, error) {
	switch id {
	case StatisticTypeFleetTotals:
		return s.getFleetTotals(ctx)
	case StatisticTypeRevenue:
		return s.getRevenue(ctx)
	case StatisticTypeEngagement:
		return s.getEngagement(ctx, now)
	case StatisticTypeChurnRisk:
		return s.getChurnRisk(ctx, now)
	case StatisticTypeTopDrivers:
		return s.getTopDrivers(ctx)
	case StatisticTypeSourceShare:
		return s.getSourceShare(ctx)
	case StatisticTypeSignupGrowth:
		return s.getSignupGrowth(ctx)
	case StatisticTypeSubscriberTrend:
		return s.getSubscriberTrend(ctx)
	default:
		return nil, fmt.Errorf("invalid statistic id: %s", id)
	}
}

// BusinessMetricsResponse maps each requested statistic to its payload.
type BusinessMetricsResponse struct {
	DataItems map[StatisticType]any `json:"data_items"`
}

// BusinessMetrics fans the requested statistics out concurrently and joins
// the results.
func (s *Service) BusinessMetrics(ctx context.Context, items []StatisticType) (*BusinessMetricsResponse, error) {
	if len(items) == 0 {
		items = AllStatisticTypes
	}
	now := time.Now()

	var wg sync.WaitGroup
	errChan := make(chan error, len(items))
	resChan := make(chan *lo.Entry[StatisticType, any], len(items))

	for _, item := range items {
		wg.Add(1)
		go func(id StatisticType) {
			defer wg.Done()
			res, err := s.getStatistic(ctx, id, now)
			if err != nil {
				errChan <- fmt.Errorf("%s: %w", id, err)
				return
			}
			resChan <- &lo.Entry[StatisticType, any]{Key: id, Value: res}
		}(item)
	}

	go func() { wg.Wait(); close(errChan); close(resChan) }()

	results := make(map[StatisticType]any, len(items))
	for i := 0; i < len(items); i++ {
		select {
		case err := <-errChan:
			if err != nil {
				return nil, err
			}
		case entry := <-resChan:
			results[entry.Key] = entry.Value
		}
	}
	return &BusinessMetricsResponse{DataItems: results}, nil
}

// SaveDailySnapshot persists today's per-category/tier subscriber counts.
// Re-running on the same date overwrites the previous counts.
func (s *Service) SaveDailySnapshot(ctx context.Context, snapshotDate time.Time) error {
	rows := []struct {
		Category types.UserCategory `gorm:"column:category"`
		Tier     types.PlanTier     `gorm:"column:plan_type"`
		N        int                `gorm:"column:n"`
	}{}
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Select("category, plan_type, COUNT(*) AS n").
		Group("category, plan_type").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("snapshot counts: %w", err)
	}
	date := snapshotDate.Format(time.DateOnly)
	for _, r := range rows {
		snap := models.SubscriberSnapshot{
			ID:           tool.GenerateUUIDV7(),
			SnapshotDate: date,
			Category:     r.Category,
			PlanTier:     r.Tier,
			Count:        r.N,
		}
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_date"}, {Name: "category"}, {Name: "plan_tier"}},
			DoUpdates: clause.AssignmentColumns([]string{"count"}),
		}).Create(&snap).Error; err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
	return nil
}

// Diagnostics is the admin health drill-down: row counts per table plus
// database reachability.
func (s *Service) Diagnostics(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	sqlDB, err := s.db.DB()
	if err == nil {
		out["database"] = sqlDB.PingContext(ctx) == nil
	} else {
		out["database"] = false
	}
	tables := map[string]any{
		"users":      &models.User{},
		"drive_logs": &models.DriveLog{},
		"tickets":    &models.SupportTicket{},
		"events":     &models.PaymentEventLog{},
	}
	for name, model := range tables {
		var n int64
		if err := s.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		out[name] = n
	}
	return out, nil
}
