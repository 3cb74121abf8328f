package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// Goal is the daily breakdown of the weekly earnings target.
type Goal struct {
	Status types.GoalStatus `json:"status"`
	// WeeklyTarget is the configured weekly net-profit target.
	WeeklyTarget decimal.Decimal `json:"weekly_target"`
	// AccumulatedBefore is the net profit earned this week before today.
	AccumulatedBefore decimal.Decimal `json:"accumulated_before"`
	TodayNet          decimal.Decimal `json:"today_net"`
	// TodayGoal is what today needs to yield to stay on track.
	TodayGoal decimal.Decimal `json:"today_goal"`
	// Remaining is how much of today's goal is still open (pending only).
	Remaining decimal.Decimal `json:"remaining"`
	DaysLeft  int             `json:"days_left"`
}

// SmartGoal splits the remaining weekly target across the days left in the
// week (today included, Sunday week start).
func SmartGoal(weeklyTarget, accumulatedBefore, todayNet decimal.Decimal, now time.Time) Goal {
	daysLeft := 7 - int(now.Weekday())
	g := Goal{
		WeeklyTarget:      weeklyTarget,
		AccumulatedBefore: accumulatedBefore,
		TodayNet:          todayNet,
		DaysLeft:          daysLeft,
	}
	if weeklyTarget.LessThanOrEqual(decimal.Zero) {
		g.Status = types.GoalStatusNoTarget
		return g
	}
	if accumulatedBefore.GreaterThanOrEqual(weeklyTarget) {
		g.Status = types.GoalStatusSurplus
		return g
	}
	g.TodayGoal = money.Round(weeklyTarget.Sub(accumulatedBefore).Div(decimal.NewFromInt(int64(daysLeft))))
	if todayNet.GreaterThanOrEqual(g.TodayGoal) {
		// crushing it means beating the day goal by more than 10%
		if todayNet.GreaterThan(g.TodayGoal.Mul(decimal.NewFromFloat(1.1))) {
			g.Status = types.GoalStatusCrushed
		} else {
			g.Status = types.GoalStatusDone
		}
		return g
	}
	g.Status = types.GoalStatusPending
	g.Remaining = money.Round(g.TodayGoal.Sub(todayNet))
	return g
}
