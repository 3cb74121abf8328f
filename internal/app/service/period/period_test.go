package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// 2026-08-26 is a Wednesday
var wednesday = time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

func TestResolveWeekAlwaysSundayToSaturday(t *testing.T) {
	cases := []struct {
		name      string
		anchor    string
		wantStart string
	}{
		{name: "no anchor uses current week", anchor: "", wantStart: "2026-08-23"},
		{name: "anchor on sunday kept", anchor: "2026-08-16", wantStart: "2026-08-16"},
		{name: "mid-week anchor snaps back to sunday", anchor: "2026-08-19", wantStart: "2026-08-16"},
		{name: "garbage anchor falls back to current week", anchor: "not-a-date", wantStart: "2026-08-23"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Resolve(types.PeriodKindWeek, tc.anchor, wednesday)
			assert.Equal(t, tc.wantStart, r.Start.Format("2006-01-02"))
			assert.Equal(t, time.Sunday, r.Start.Weekday())
			assert.Equal(t, time.Saturday, r.End.Weekday())
			assert.Equal(t, r.Start.AddDate(0, 0, 6), r.End)
		})
	}
}

func TestResolveDay(t *testing.T) {
	r := Resolve(types.PeriodKindDay, "2026-02-14", wednesday)
	assert.Equal(t, r.Start, r.End)
	assert.Equal(t, "14/02/2026", r.Label)
	assert.Equal(t, "2026-02-14", r.Anchor)

	r = Resolve(types.PeriodKindDay, "", wednesday)
	assert.Equal(t, "2026-08-26", r.Anchor)
}

func TestResolveMonth(t *testing.T) {
	r := Resolve(types.PeriodKindMonth, "2026-02", wednesday)
	assert.Equal(t, "2026-02-01", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2026-02-28", r.End.Format("2006-01-02"))

	r = Resolve(types.PeriodKindMonth, "bogus", wednesday)
	assert.Equal(t, "2026-08-01", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2026-08-31", r.End.Format("2006-01-02"))
}

func TestResolveYear(t *testing.T) {
	r := Resolve(types.PeriodKindYear, "2024", wednesday)
	assert.Equal(t, "2024-01-01", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2024-12-31", r.End.Format("2006-01-02"))
	assert.Equal(t, "2024", r.Label)
}

func TestWeekStart(t *testing.T) {
	sunday := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, sunday, WeekStart(sunday))
	assert.Equal(t, sunday, WeekStart(wednesday))
	saturday := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, sunday, WeekStart(saturday))
}

func TestWeekOptions(t *testing.T) {
	opts := WeekOptions(2026, wednesday)
	require.NotEmpty(t, opts)
	assert.Equal(t, "This week", opts[0].Label)
	assert.Equal(t, "2026-08-23", opts[0].Value)

	// no duplicates of the current week, all values are sundays
	seen := map[string]bool{}
	for _, o := range opts {
		assert.False(t, seen[o.Value], "duplicate week %s", o.Value)
		seen[o.Value] = true
		d, err := time.Parse("2006-01-02", o.Value)
		require.NoError(t, err)
		assert.Equal(t, time.Sunday, d.Weekday())
		assert.False(t, d.After(time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)))
	}
}
