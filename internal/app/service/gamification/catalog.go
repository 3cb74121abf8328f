package gamification

// Badge categories. Threshold badges are evaluated against aggregate
// counters; event badges are granted explicitly; the meta badge unlocks when
// everything else is done.
const (
	CategoryDays     = "days"
	CategoryDistance = "distance"
	CategoryRevenue  = "revenue"
	CategoryAgenda   = "agenda"
	CategoryEvent    = "event"
	CategoryMeta     = "meta"
)

const (
	BadgeFirstGear    = "first_gear"
	BadgeMarathoner   = "marathoner"
	BadgeVeteran      = "veteran"
	BadgeTraveler     = "traveler"
	BadgeRoadDog      = "road_dog"
	BadgeRoadKing     = "road_king"
	BadgeFirstK       = "first_k"
	BadgeTenK         = "ten_k"
	BadgeMagnate      = "magnate"
	BadgeFullAgenda   = "full_agenda"
	BadgeExecutive    = "executive"
	BadgeEntrepreneur = "entrepreneur"
	BadgeLivingLegend = "living_legend"
)

type BadgeDef struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    string
	XP          int
	// Target is the counter threshold; zero for event and meta badges.
	Target float64
}

var Catalog = []BadgeDef{
	{ID: BadgeFirstGear, Name: "First Gear", Description: "Log your first working day", Icon: "🚗", Category: CategoryDays, XP: 10, Target: 1},
	{ID: BadgeMarathoner, Name: "Marathoner", Description: "Log 30 working days", Icon: "🏃", Category: CategoryDays, XP: 50, Target: 30},
	{ID: BadgeVeteran, Name: "Veteran", Description: "Log 365 working days", Icon: "🎖️", Category: CategoryDays, XP: 200, Target: 365},

	{ID: BadgeTraveler, Name: "Traveler", Description: "Drive 1,000 km", Icon: "🧭", Category: CategoryDistance, XP: 20, Target: 1000},
	{ID: BadgeRoadDog, Name: "Road Dog", Description: "Drive 10,000 km", Icon: "🛣️", Category: CategoryDistance, XP: 80, Target: 10000},
	{ID: BadgeRoadKing, Name: "Road King", Description: "Drive 50,000 km", Icon: "👑", Category: CategoryDistance, XP: 250, Target: 50000},

	{ID: BadgeFirstK, Name: "First Grand", Description: "Earn R$ 1,000 gross", Icon: "💵", Category: CategoryRevenue, XP: 20, Target: 1000},
	{ID: BadgeTenK, Name: "Five Figures", Description: "Earn R$ 10,000 gross", Icon: "💰", Category: CategoryRevenue, XP: 80, Target: 10000},
	{ID: BadgeMagnate, Name: "Magnate", Description: "Earn R$ 100,000 gross", Icon: "🏦", Category: CategoryRevenue, XP: 300, Target: 100000},

	{ID: BadgeFullAgenda, Name: "Full Agenda", Description: "Complete 5 scheduled trips", Icon: "📅", Category: CategoryAgenda, XP: 20, Target: 5},
	{ID: BadgeExecutive, Name: "Executive", Description: "Complete 50 scheduled trips", Icon: "💼", Category: CategoryAgenda, XP: 100, Target: 50},

	{ID: BadgeEntrepreneur, Name: "Entrepreneur", Description: "Issue your first trip receipt", Icon: "🧾", Category: CategoryEvent, XP: 30},

	{ID: BadgeLivingLegend, Name: "Living Legend", Description: "Unlock every other badge", Icon: "🌟", Category: CategoryMeta, XP: 500},
}

func defByID(id string) (BadgeDef, bool) {
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return BadgeDef{}, false
}
