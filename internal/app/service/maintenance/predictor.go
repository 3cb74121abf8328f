package maintenance

import (
	"time"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// minimum daily usage before a projection is considered meaningful
const minProjectionRate = 10.0

// UrgencyFor ranks an item by the kilometers left until it is due.
func UrgencyFor(remainingKM float64) types.Urgency {
	switch {
	case remainingKM <= 0:
		return types.UrgencyCritical
	case remainingKM < 500:
		return types.UrgencyHigh
	case remainingKM < 1500:
		return types.UrgencyMedium
	default:
		return types.UrgencyLow
	}
}

// Projection estimates when an item comes due given the trailing daily usage.
type Projection struct {
	// Due marks items already past their target odometer.
	Due bool `json:"due"`
	// Calculating is set while the usage rate is too low to extrapolate.
	Calculating   bool       `json:"calculating"`
	ProjectedDate *time.Time `json:"projected_date,omitempty"`
}

// Project extrapolates the due date from the average daily kilometers. Rates
// at or below the floor yield a "calculating" projection instead of a date.
func Project(remainingKM, ratePerDay float64, now time.Time) Projection {
	if remainingKM <= 0 {
		return Projection{Due: true}
	}
	if ratePerDay <= minProjectionRate {
		return Projection{Calculating: true}
	}
	days := int(remainingKM / ratePerDay)
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, days)
	return Projection{ProjectedDate: &d}
}
