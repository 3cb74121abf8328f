package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOperationalProfit(t *testing.T) {
	// two days: gross 150.15 total, fuel 33.33 total
	agg := Aggregate{
		Gross:       dec("150.15"),
		ExpenseFuel: dec("33.33"),
		DaysLogged:  2,
	}
	assert.Equal(t, "116.82", agg.OperationalProfit().StringFixed(2))
	assert.Equal(t, "33.33", agg.VariableExpense().StringFixed(2))
}

func TestVariableExpenseSumsAllCategories(t *testing.T) {
	agg := Aggregate{
		Gross:              dec("200"),
		ExpenseFuel:        dec("50.10"),
		ExpenseFood:        dec("20.25"),
		ExpenseMaintenance: dec("10"),
	}
	assert.Equal(t, "80.35", agg.VariableExpense().StringFixed(2))
	assert.Equal(t, "119.65", agg.OperationalProfit().StringFixed(2))
}

func TestComputeMetricsZeroDenominators(t *testing.T) {
	m := ComputeMetrics(Aggregate{Gross: dec("100")})
	assert.True(t, m.GrossPerKM.IsZero())
	assert.True(t, m.ProfitPerKM.IsZero())
	assert.True(t, m.GrossPerHour.IsZero())
	assert.True(t, m.GrossPerRide.IsZero())
	assert.True(t, m.GrossPerDay.IsZero())
}

func TestComputeMetrics(t *testing.T) {
	agg := Aggregate{
		Gross:       dec("200"),
		ExpenseFuel: dec("50"),
		DistanceKM:  100,
		HoursWorked: 10,
		RidesUber:   8,
		RidesPop99:  2,
		DaysLogged:  2,
	}
	m := ComputeMetrics(agg)
	assert.Equal(t, "2.00", m.GrossPerKM.StringFixed(2))
	assert.Equal(t, "1.50", m.ProfitPerKM.StringFixed(2))
	assert.Equal(t, "20.00", m.GrossPerHour.StringFixed(2))
	assert.Equal(t, "15.00", m.ProfitPerHour.StringFixed(2))
	assert.Equal(t, "20.00", m.GrossPerRide.StringFixed(2))
	assert.Equal(t, "100.00", m.GrossPerDay.StringFixed(2))
	assert.Equal(t, "75.00", m.ProfitPerDay.StringFixed(2))
}

func TestSourceBreakdownCustomName(t *testing.T) {
	agg := Aggregate{EarningsOther: dec("42")}
	slices := SourceBreakdown(agg, "")
	assert.Equal(t, "Other", slices[3].Label)

	slices = SourceBreakdown(agg, "InDrive")
	assert.Equal(t, "InDrive", slices[3].Label)
	assert.Equal(t, "42", slices[3].Earnings.String())
}

func TestExpenseBreakdownOrderAndColors(t *testing.T) {
	slices := ExpenseBreakdown(Aggregate{ExpenseFuel: dec("10")})
	assert.Len(t, slices, 3)
	assert.Equal(t, "fuel", slices[0].Category)
	assert.NotEmpty(t, slices[0].Color)
}
