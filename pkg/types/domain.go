package types

// UserCategory is the lifecycle state of an account.
type UserCategory string

const (
	UserCategoryTrial      UserCategory = "trial"
	UserCategorySubscriber UserCategory = "subscriber"
	UserCategoryExpired    UserCategory = "expired"
)

// PlanTier is the paid plan level of a subscriber.
type PlanTier string

const (
	PlanTierBasic   PlanTier = "basic"
	PlanTierPremium PlanTier = "premium"
)

func (t PlanTier) Valid() bool {
	return t == PlanTierBasic || t == PlanTierPremium
}

// PeriodKind selects how a reporting range is resolved.
type PeriodKind string

const (
	PeriodKindDay   PeriodKind = "day"
	PeriodKindWeek  PeriodKind = "week"
	PeriodKindMonth PeriodKind = "month"
	PeriodKindYear  PeriodKind = "year"
)

// Urgency ranks how soon a maintenance item is due.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// AppointmentStatus tracks scheduled trips.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// TicketStatus is the support ticket lifecycle.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusAnswered   TicketStatus = "answered"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketSender identifies who wrote a ticket message.
type TicketSender string

const (
	TicketSenderUser  TicketSender = "user"
	TicketSenderAdmin TicketSender = "admin"
)

// PaymentMethod records which provider settled a renewal.
type PaymentMethod string

const (
	PaymentMethodStripe      PaymentMethod = "stripe"
	PaymentMethodMercadoPago PaymentMethod = "mercadopago"
	PaymentMethodManual      PaymentMethod = "manual"
)

// GoalStatus is the daily smart-goal outcome.
type GoalStatus string

const (
	GoalStatusNoTarget GoalStatus = "no_target"
	GoalStatusSurplus  GoalStatus = "surplus"
	GoalStatusDone     GoalStatus = "done"
	GoalStatusCrushed  GoalStatus = "crushed"
	GoalStatusPending  GoalStatus = "pending"
)
