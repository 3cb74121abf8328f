package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercentCaps(t *testing.T) {
	assert.Equal(t, 0, ProgressPercent(0, 100))
	assert.Equal(t, 50, ProgressPercent(50, 100))
	assert.Equal(t, 100, ProgressPercent(150, 100))
	assert.Equal(t, 0, ProgressPercent(50, 0))
}

func TestEligibleBadges(t *testing.T) {
	c := Counters{DaysLogged: 31, TotalKM: 1200, GrossRevenue: 999, CompletedAppointments: 5}
	got := EligibleBadges(c)
	assert.ElementsMatch(t, []string{BadgeFirstGear, BadgeMarathoner, BadgeTraveler, BadgeFullAgenda}, got)
}

func TestEligibleBadgesNeverIncludesEventOrMeta(t *testing.T) {
	c := Counters{DaysLogged: 1000, TotalKM: 100000, GrossRevenue: 1000000, CompletedAppointments: 1000}
	got := EligibleBadges(c)
	assert.NotContains(t, got, BadgeEntrepreneur)
	assert.NotContains(t, got, BadgeLivingLegend)
}

func TestMissingGrantsIsIdempotent(t *testing.T) {
	c := Counters{DaysLogged: 2, TotalKM: 1500}
	eligible := EligibleBadges(c)
	assert.ElementsMatch(t, []string{BadgeFirstGear, BadgeTraveler}, eligible)

	unlocked := map[string]bool{}
	first := MissingGrants(eligible, unlocked)
	assert.ElementsMatch(t, []string{BadgeFirstGear, BadgeTraveler}, first)

	for _, id := range first {
		unlocked[id] = true
	}
	// same counters, second evaluation grants nothing
	second := MissingGrants(EligibleBadges(c), unlocked)
	assert.Empty(t, second)
}
