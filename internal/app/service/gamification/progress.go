package gamification

// Counters are the lifetime aggregates badge thresholds are checked against.
type Counters struct {
	DaysLogged            float64
	TotalKM               float64
	GrossRevenue          float64
	CompletedAppointments float64
}

func (c Counters) valueFor(category string) float64 {
	switch category {
	case CategoryDays:
		return c.DaysLogged
	case CategoryDistance:
		return c.TotalKM
	case CategoryRevenue:
		return c.GrossRevenue
	case CategoryAgenda:
		return c.CompletedAppointments
	default:
		return 0
	}
}

// ProgressPercent is current/target capped at 100.
func ProgressPercent(current, target float64) int {
	if target <= 0 {
		return 0
	}
	p := int(current * 100 / target)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// EligibleBadges lists the threshold badges the counters satisfy. Event and
// meta badges are never returned here.
func EligibleBadges(c Counters) []string {
	var out []string
	for _, def := range Catalog {
		if def.Target <= 0 {
			continue
		}
		if c.valueFor(def.Category) >= def.Target {
			out = append(out, def.ID)
		}
	}
	return out
}

// MissingGrants filters eligible down to badges not yet unlocked. Running
// the evaluation twice with unchanged counters yields nothing the second
// time.
func MissingGrants(eligible []string, unlocked map[string]bool) []string {
	var out []string
	for _, id := range eligible {
		if !unlocked[id] {
			out = append(out, id)
		}
	}
	return out
}
