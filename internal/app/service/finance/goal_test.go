package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// 2026-08-26 is a Wednesday, so 4 days remain in the Sunday-anchored week.
var goalNow = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

func TestSmartGoalNoTarget(t *testing.T) {
	g := SmartGoal(decimal.Zero, dec("100"), dec("50"), goalNow)
	assert.Equal(t, types.GoalStatusNoTarget, g.Status)
}

func TestSmartGoalSurplus(t *testing.T) {
	g := SmartGoal(dec("500"), dec("600"), decimal.Zero, goalNow)
	assert.Equal(t, types.GoalStatusSurplus, g.Status)
}

func TestSmartGoalPending(t *testing.T) {
	// remaining 400 over 4 days = 100/day, today at 40
	g := SmartGoal(dec("500"), dec("100"), dec("40"), goalNow)
	assert.Equal(t, types.GoalStatusPending, g.Status)
	assert.Equal(t, 4, g.DaysLeft)
	assert.Equal(t, "100.00", g.TodayGoal.StringFixed(2))
	assert.Equal(t, "60.00", g.Remaining.StringFixed(2))
}

func TestSmartGoalDone(t *testing.T) {
	g := SmartGoal(dec("500"), dec("100"), dec("105"), goalNow)
	assert.Equal(t, types.GoalStatusDone, g.Status)

	// exactly 110% of the 100 day goal is still plain done
	g = SmartGoal(dec("500"), dec("100"), dec("110"), goalNow)
	assert.Equal(t, types.GoalStatusDone, g.Status)
}

func TestSmartGoalCrushed(t *testing.T) {
	g := SmartGoal(dec("500"), dec("100"), dec("110.01"), goalNow)
	assert.Equal(t, types.GoalStatusCrushed, g.Status)
}

func TestSmartGoalSundayHasSevenDays(t *testing.T) {
	sunday := time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)
	g := SmartGoal(dec("700"), decimal.Zero, decimal.Zero, sunday)
	assert.Equal(t, 7, g.DaysLeft)
	assert.Equal(t, "100.00", g.TodayGoal.StringFixed(2))
}
