package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

func TestUrgencyFor(t *testing.T) {
	cases := []struct {
		remaining float64
		want      types.Urgency
	}{
		{remaining: -250, want: types.UrgencyCritical},
		{remaining: 0, want: types.UrgencyCritical},
		{remaining: 1, want: types.UrgencyHigh},
		{remaining: 499, want: types.UrgencyHigh},
		{remaining: 500, want: types.UrgencyMedium},
		{remaining: 1499, want: types.UrgencyMedium},
		{remaining: 1500, want: types.UrgencyLow},
		{remaining: 10000, want: types.UrgencyLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, UrgencyFor(tc.remaining), "remaining=%v", tc.remaining)
	}
}

func TestProjectOverdue(t *testing.T) {
	p := Project(-10, 50, time.Now())
	assert.True(t, p.Due)
	assert.Nil(t, p.ProjectedDate)
}

func TestProjectLowRateIsCalculating(t *testing.T) {
	p := Project(800, 10, time.Now())
	assert.True(t, p.Calculating)
	assert.Nil(t, p.ProjectedDate)

	p = Project(800, 0, time.Now())
	assert.True(t, p.Calculating)
}

func TestProjectDate(t *testing.T) {
	now := time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)
	p := Project(900, 45, now)
	require.NotNil(t, p.ProjectedDate)
	assert.Equal(t, "2026-09-15", p.ProjectedDate.Format("2006-01-02"))
	assert.False(t, p.Due)
	assert.False(t, p.Calculating)
}
