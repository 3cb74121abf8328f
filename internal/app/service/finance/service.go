package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/period"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/settings"
	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
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

const aggregateColumns = `
COALESCE(SUM(gross_earnings), 0)       AS gross,
COALESCE(SUM(expense_fuel), 0)         AS expense_fuel,
COALESCE(SUM(expense_food), 0)         AS expense_food,
COALESCE(SUM(expense_maintenance), 0)  AS expense_maintenance,
COALESCE(SUM(earnings_uber), 0)        AS earnings_uber,
COALESCE(SUM(earnings_pop99), 0)       AS earnings_pop99,
COALESCE(SUM(earnings_private), 0)     AS earnings_private,
COALESCE(SUM(earnings_other), 0)       AS earnings_other,
COALESCE(SUM(rides_uber), 0)           AS rides_uber,
COALESCE(SUM(rides_pop99), 0)          AS rides_pop99,
COALESCE(SUM(rides_private), 0)        AS rides_private,
COALESCE(SUM(rides_other), 0)          AS rides_other,
COALESCE(SUM(distance_km), 0)          AS distance_km,
COALESCE(SUM(hours_worked), 0)         AS hours_worked,
COUNT(*)                               AS days_logged`

// Aggregate sums all drive-log columns of the range in one query.
func (s *Service) Aggregate(ctx context.Context, userID string, start, end time.Time) (Aggregate, error) {
	var agg Aggregate
	err := s.db.WithContext(ctx).
		Model(&models.DriveLog{}).
		Select(aggregateColumns).
		Where("user_id = ? AND log_date BETWEEN ? AND ?", userID, start, end).
		Scan(&agg).Error
	if err != nil {
		return Aggregate{}, fmt.Errorf("aggregate drive logs: %w", err)
	}
	return agg, nil
}

// Dashboard is the assembled home-screen payload.
type Dashboard struct {
	Period        period.Range    `json:"period"`
	Aggregate     Aggregate       `json:"aggregate"`
	Metrics       Metrics         `json:"metrics"`
	Sources       []SourceSlice   `json:"sources"`
	Expenses      []ExpenseSlice  `json:"expenses"`
	WeekNet       decimal.Decimal `json:"week_net"`
	Goal          Goal            `json:"goal"`
	GoalDismissed bool            `json:"goal_dismissed"`
}

func (s *Service) Dashboard(ctx context.Context, user *models.User, rng period.Range, now time.Time) (*Dashboard, error) {
	agg, err := s.Aggregate(ctx, user.ID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	week := period.Resolve(types.PeriodKindWeek, "", now)
	weekAgg, err := s.Aggregate(ctx, user.ID, week.Start, week.End)
	if err != nil {
		return nil, err
	}

	today := period.Resolve(types.PeriodKindDay, "", now)
	todayAgg, err := s.Aggregate(ctx, user.ID, today.Start, today.End)
	if err != nil {
		return nil, err
	}

	accumulatedBefore := decimal.Zero
	if today.Start.After(week.Start) {
		beforeAgg, err := s.Aggregate(ctx, user.ID, week.Start, today.Start.AddDate(0, 0, -1))
		if err != nil {
			return nil, err
		}
		accumulatedBefore = beforeAgg.OperationalProfit()
	}

	weeklyTarget := s.settings.Decimal(ctx, user.ID, settings.KeyWeeklyGoal)
	goal := SmartGoal(weeklyTarget, accumulatedBefore, todayAgg.OperationalProfit(), now)
	dismissed := s.settings.Value(ctx, user.ID, settings.KeyGoalDismissedWeek, "") == week.Anchor

	return &Dashboard{
		Period:        rng,
		Aggregate:     agg,
		Metrics:       ComputeMetrics(agg),
		Sources:       SourceBreakdown(agg, s.settings.Value(ctx, user.ID, settings.KeyCustomAppName, "")),
		Expenses:      ExpenseBreakdown(agg),
		WeekNet:       weekAgg.OperationalProfit(),
		Goal:          goal,
		GoalDismissed: dismissed,
	}, nil
}

// DailyPoint is one day of the report chart.
type DailyPoint struct {
	Date  string          `json:"date"`
	Gross decimal.Decimal `json:"gross"`
	Net   decimal.Decimal `json:"net"`
}

type WeekdayAverage struct {
	Weekday string          `json:"weekday"`
	AvgNet  decimal.Decimal `json:"avg_net"`
}

// Reports is the detailed report payload with chart data and records.
type Reports struct {
	Period       period.Range     `json:"period"`
	Aggregate    Aggregate        `json:"aggregate"`
	Metrics      Metrics          `json:"metrics"`
	Sources      []SourceSlice    `json:"sources"`
	Expenses     []ExpenseSlice   `json:"expenses"`
	Series       []DailyPoint     `json:"series"`
	BestDay      *DailyPoint      `json:"best_day"`
	WeekdayAvgs  []WeekdayAverage `json:"weekday_averages"`
	BestWeekday  string           `json:"best_weekday"`
	WorstWeekday string           `json:"worst_weekday"`
	BestMonth    string           `json:"best_month,omitempty"`
	Years        []int            `json:"years"`
}

type dailyRow struct {
	LogDate time.Time       `gorm:"column:log_date"`
	Gross   decimal.Decimal `gorm:"column:gross"`
	Net     decimal.Decimal `gorm:"column:net"`
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (s *Service) Reports(ctx context.Context, user *models.User, rng period.Range) (*Reports, error) {
	agg, err := s.Aggregate(ctx, user.ID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	var rows []dailyRow
	err = s.db.WithContext(ctx).
		Model(&models.DriveLog{}).
		Select(`log_date,
			gross_earnings AS gross,
			gross_earnings - expense_fuel - expense_food - expense_maintenance AS net`).
		Where("user_id = ? AND log_date BETWEEN ? AND ?", user.ID, rng.Start, rng.End).
		Order("log_date").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("report series: %w", err)
	}

	rep := &Reports{
		Period:    rng,
		Aggregate: agg,
		Metrics:   ComputeMetrics(agg),
		Sources:   SourceBreakdown(agg, s.settings.Value(ctx, user.ID, settings.KeyCustomAppName, "")),
		Expenses:  ExpenseBreakdown(agg),
		Series:    make([]DailyPoint, 0, len(rows)),
	}

	var (
		weekdaySum   [7]decimal.Decimal
		weekdayCount [7]int
		monthNet     = map[string]decimal.Decimal{}
	)
	for _, r := range rows {
		p := DailyPoint{Date: r.LogDate.Format("2006-01-02"), Gross: r.Gross, Net: r.Net}
		rep.Series = append(rep.Series, p)
		if rep.BestDay == nil || p.Net.GreaterThan(rep.BestDay.Net) {
			best := p
			rep.BestDay = &best
		}
		wd := int(r.LogDate.Weekday())
		weekdaySum[wd] = weekdaySum[wd].Add(r.Net)
		weekdayCount[wd]++
		if rng.Kind == types.PeriodKindYear {
			m := r.LogDate.Format("2006-01")
			monthNet[m] = monthNet[m].Add(r.Net)
		}
	}

	var bestAvg, worstAvg decimal.Decimal
	for wd := 0; wd < 7; wd++ {
		if weekdayCount[wd] == 0 {
			continue
		}
		avg := money.Round(weekdaySum[wd].Div(decimal.NewFromInt(int64(weekdayCount[wd]))))
		rep.WeekdayAvgs = append(rep.WeekdayAvgs, WeekdayAverage{Weekday: weekdayNames[wd], AvgNet: avg})
		if rep.BestWeekday == "" || avg.GreaterThan(bestAvg) {
			rep.BestWeekday, bestAvg = weekdayNames[wd], avg
		}
		if rep.WorstWeekday == "" || avg.LessThan(worstAvg) {
			rep.WorstWeekday, worstAvg = weekdayNames[wd], avg
		}
	}

	if rng.Kind == types.PeriodKindYear {
		var bestMonthNet decimal.Decimal
		for m, net := range monthNet {
			if rep.BestMonth == "" || net.GreaterThan(bestMonthNet) {
				rep.BestMonth, bestMonthNet = m, net
			}
		}
	}

	if err := s.db.WithContext(ctx).
		Model(&models.DriveLog{}).
		Distinct("EXTRACT(YEAR FROM log_date)::int AS year").
		Where("user_id = ?", user.ID).
		Order("year DESC").
		Pluck("year", &rep.Years).Error; err != nil {
		return nil, fmt.Errorf("report years: %w", err)
	}
	return rep, nil
}

// RealProfit is operational profit minus the wear reserve and, for premium
// accounts, prorated fixed costs.
type RealProfit struct {
	Period        period.Range    `json:"period"`
	Operational   decimal.Decimal `json:"operational"`
	DistanceKM    float64         `json:"distance_km"`
	ReservePerKM  decimal.Decimal `json:"reserve_per_km"`
	Reserve       decimal.Decimal `json:"reserve"`
	FixedCosts    decimal.Decimal `json:"fixed_costs"`
	IncludesFixed bool            `json:"includes_fixed"`
	Net           decimal.Decimal `json:"net"`
}

// fixed-cost proration windows in days
var prorationDays = map[string]int64{
	"insurance": 30,
	"tax":       365,
	"rent":      7,
	"financing": 30,
}

func (s *Service) RealProfit(ctx context.Context, user *models.User, rng period.Range, now time.Time) (*RealProfit, error) {
	agg, err := s.Aggregate(ctx, user.ID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	depRate := decimal.NewFromFloat(s.settings.Float(ctx, user.ID, settings.KeyDepreciationRate))
	maintRate := decimal.NewFromFloat(s.settings.Float(ctx, user.ID, settings.KeyMaintenanceReserveRate))
	perKM := depRate.Add(maintRate)
	reserve := money.Round(decimal.NewFromFloat(agg.DistanceKM).Mul(perKM))

	rp := &RealProfit{
		Period:       rng,
		Operational:  agg.OperationalProfit(),
		DistanceKM:   agg.DistanceKM,
		ReservePerKM: perKM,
		Reserve:      reserve,
	}

	if user.HasPremium(now) {
		costs, err := s.settings.FixedCosts(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		days := int64(rng.End.Sub(rng.Start).Hours()/24) + 1
		total := decimal.Zero
		for _, c := range costs {
			window := prorationDays[c.Kind]
			if window == 0 {
				window = 30
			}
			daily := c.Value.Div(decimal.NewFromInt(window))
			total = total.Add(daily.Mul(decimal.NewFromInt(days)))
		}
		rp.FixedCosts = money.Round(total)
		rp.IncludesFixed = true
	}

	rp.Net = rp.Operational.Sub(rp.Reserve).Sub(rp.FixedCosts)
	return rp, nil
}
