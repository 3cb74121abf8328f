package period

import (
	"fmt"
	"time"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// Range is a resolved reporting window. Start and End are inclusive dates
// at midnight in the caller's location.
type Range struct {
	Kind   types.PeriodKind `json:"kind"`
	Start  time.Time        `json:"start"`
	End    time.Time        `json:"end"`
	Label  string           `json:"label"`
	Anchor string           `json:"anchor"`
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Sunday on or before t.
func WeekStart(t time.Time) time.Time {
	d := dateOf(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// Resolve turns a period kind and an optional anchor into a concrete range.
// Malformed or missing anchors silently resolve the current period.
func Resolve(kind types.PeriodKind, anchor string, now time.Time) Range {
	switch kind {
	case types.PeriodKindWeek:
		start, err := time.ParseInLocation("2006-01-02", anchor, now.Location())
		if err != nil {
			start = WeekStart(now)
		} else {
			start = WeekStart(start)
		}
		end := start.AddDate(0, 0, 6)
		return Range{
			Kind:   types.PeriodKindWeek,
			Start:  start,
			End:    end,
			Label:  fmt.Sprintf("%s - %s", start.Format("02/01"), end.Format("02/01")),
			Anchor: start.Format("2006-01-02"),
		}
	case types.PeriodKindMonth:
		first, err := time.ParseInLocation("2006-01", anchor, now.Location())
		if err != nil {
			first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		}
		end := first.AddDate(0, 1, -1)
		return Range{
			Kind:   types.PeriodKindMonth,
			Start:  first,
			End:    end,
			Label:  first.Format("Jan/2006"),
			Anchor: first.Format("2006-01"),
		}
	case types.PeriodKindYear:
		first, err := time.ParseInLocation("2006", anchor, now.Location())
		if err != nil {
			first = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		}
		end := time.Date(first.Year(), 12, 31, 0, 0, 0, 0, now.Location())
		return Range{
			Kind:   types.PeriodKindYear,
			Start:  first,
			End:    end,
			Label:  first.Format("2006"),
			Anchor: first.Format("2006"),
		}
	default:
		day, err := time.ParseInLocation("2006-01-02", anchor, now.Location())
		if err != nil {
			day = dateOf(now)
		}
		return Range{
			Kind:   types.PeriodKindDay,
			Start:  day,
			End:    day,
			Label:  day.Format("02/01/2006"),
			Anchor: day.Format("2006-01-02"),
		}
	}
}

// Option is a selectable week for report dropdowns.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// WeekOptions lists the Sunday-anchored weeks of a year, most recent first.
// The current week comes first with a distinct label; future weeks are
// excluded.
func WeekOptions(year int, now time.Time) []Option {
	current := WeekStart(now)
	opts := []Option{}
	if current.Year() == year || current.AddDate(0, 0, 6).Year() == year {
		opts = append(opts, Option{Value: current.Format("2006-01-02"), Label: "This week"})
	}

	// first Sunday on or before Jan 1
	start := WeekStart(time.Date(year, 1, 1, 0, 0, 0, 0, now.Location()))
	var weeks []time.Time
	for w := start; w.Year() <= year; w = w.AddDate(0, 0, 7) {
		if w.After(current) {
			break
		}
		if w.Equal(current) {
			continue
		}
		weeks = append(weeks, w)
	}
	for i := len(weeks) - 1; i >= 0; i-- {
		w := weeks[i]
		end := w.AddDate(0, 0, 6)
		opts = append(opts, Option{
			Value: w.Format("2006-01-02"),
			Label: fmt.Sprintf("%s - %s", w.Format("02/01"), end.Format("02/01")),
		})
	}
	return opts
}
