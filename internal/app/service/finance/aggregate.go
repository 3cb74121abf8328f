package finance

import (
	"github.com/shopspring/decimal"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
)

// Aggregate holds the summed drive-log columns of a period. It is filled by
// a single SELECT; the derived figures are computed in Go.
type Aggregate struct {
	Gross              decimal.Decimal `gorm:"column:gross" json:"gross"`
	ExpenseFuel        decimal.Decimal `gorm:"column:expense_fuel" json:"expense_fuel"`
	ExpenseFood        decimal.Decimal `gorm:"column:expense_food" json:"expense_food"`
	ExpenseMaintenance decimal.Decimal `gorm:"column:expense_maintenance" json:"expense_maintenance"`
	EarningsUber       decimal.Decimal `gorm:"column:earnings_uber" json:"earnings_uber"`
	EarningsPop99      decimal.Decimal `gorm:"column:earnings_pop99" json:"earnings_pop99"`
	EarningsPrivate    decimal.Decimal `gorm:"column:earnings_private" json:"earnings_private"`
	EarningsOther      decimal.Decimal `gorm:"column:earnings_other" json:"earnings_other"`
	RidesUber          int             `gorm:"column:rides_uber" json:"rides_uber"`
	RidesPop99         int             `gorm:"column:rides_pop99" json:"rides_pop99"`
	RidesPrivate       int             `gorm:"column:rides_private" json:"rides_private"`
	RidesOther         int             `gorm:"column:rides_other" json:"rides_other"`
	DistanceKM         float64         `gorm:"column:distance_km" json:"distance_km"`
	HoursWorked        float64         `gorm:"column:hours_worked" json:"hours_worked"`
	DaysLogged         int             `gorm:"column:days_logged" json:"days_logged"`
}

// VariableExpense is the sum of the per-day expense categories.
func (a Aggregate) VariableExpense() decimal.Decimal {
	return a.ExpenseFuel.Add(a.ExpenseFood).Add(a.ExpenseMaintenance)
}

// OperationalProfit is gross earnings minus variable expenses.
func (a Aggregate) OperationalProfit() decimal.Decimal {
	return a.Gross.Sub(a.VariableExpense())
}

func (a Aggregate) TotalRides() int {
	return a.RidesUber + a.RidesPop99 + a.RidesPrivate + a.RidesOther
}

// Metrics are per-unit ratios. Every ratio stays zero when its denominator
// is zero.
type Metrics struct {
	GrossPerKM    decimal.Decimal `json:"gross_per_km"`
	ProfitPerKM   decimal.Decimal `json:"profit_per_km"`
	GrossPerHour  decimal.Decimal `json:"gross_per_hour"`
	ProfitPerHour decimal.Decimal `json:"profit_per_hour"`
	GrossPerRide  decimal.Decimal `json:"gross_per_ride"`
	ProfitPerRide decimal.Decimal `json:"profit_per_ride"`
	GrossPerDay   decimal.Decimal `json:"gross_per_day"`
	ProfitPerDay  decimal.Decimal `json:"profit_per_day"`
}

func safeDiv(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return money.Round(n.Div(d))
}

// ComputeMetrics derives the per-unit ratios from an aggregate.
func ComputeMetrics(a Aggregate) Metrics {
	km := decimal.NewFromFloat(a.DistanceKM)
	hours := decimal.NewFromFloat(a.HoursWorked)
	rides := decimal.NewFromInt(int64(a.TotalRides()))
	days := decimal.NewFromInt(int64(a.DaysLogged))
	profit := a.OperationalProfit()
	return Metrics{
		GrossPerKM:    safeDiv(a.Gross, km),
		ProfitPerKM:   safeDiv(profit, km),
		GrossPerHour:  safeDiv(a.Gross, hours),
		ProfitPerHour: safeDiv(profit, hours),
		GrossPerRide:  safeDiv(a.Gross, rides),
		ProfitPerRide: safeDiv(profit, rides),
		GrossPerDay:   safeDiv(a.Gross, days),
		ProfitPerDay:  safeDiv(profit, days),
	}
}

// SourceSlice is one ride-hailing app's share of earnings.
type SourceSlice struct {
	Source   string          `json:"source"`
	Label    string          `json:"label"`
	Earnings decimal.Decimal `json:"earnings"`
	Rides    int             `json:"rides"`
}

// SourceBreakdown lists earnings per app. customOther renames the "other"
// bucket when the driver configured a custom app name.
func SourceBreakdown(a Aggregate, customOther string) []SourceSlice {
	otherLabel := "Other"
	if customOther != "" {
		otherLabel = customOther
	}
	return []SourceSlice{
		{Source: "uber", Label: "Uber", Earnings: a.EarningsUber, Rides: a.RidesUber},
		{Source: "pop99", Label: "99Pop", Earnings: a.EarningsPop99, Rides: a.RidesPop99},
		{Source: "private", Label: "Private", Earnings: a.EarningsPrivate, Rides: a.RidesPrivate},
		{Source: "other", Label: otherLabel, Earnings: a.EarningsOther, Rides: a.RidesOther},
	}
}

// ExpenseSlice is one expense category with its chart color.
type ExpenseSlice struct {
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Value    decimal.Decimal `json:"value"`
	Color    string          `json:"color"`
}

func ExpenseBreakdown(a Aggregate) []ExpenseSlice {
	return []ExpenseSlice{
		{Category: "fuel", Label: "Fuel", Value: a.ExpenseFuel, Color: "#f59e0b"},
		{Category: "food", Label: "Food", Value: a.ExpenseFood, Color: "#10b981"},
		{Category: "maintenance", Label: "Maintenance", Value: a.ExpenseMaintenance, Color: "#6366f1"},
	}
}
