package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// Appointment is a scheduled private trip.
type Appointment struct {
	ID          string          `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID      string          `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Client      string          `gorm:"column:client;type:varchar(128);not null" json:"client"`
	ScheduledAt time.Time       `gorm:"column:scheduled_at;not null" json:"scheduled_at"`
	Origin      string          `gorm:"column:origin;type:varchar(255)" json:"origin"`
	Stop        string          `gorm:"column:stop;type:varchar(255)" json:"stop"`
	Destination string          `gorm:"column:destination;type:varchar(255)" json:"destination"`
	Value       decimal.Decimal `gorm:"column:value;type:numeric(10,2);not null;default:0" json:"value"`
	Notes       string          `gorm:"column:notes;type:text" json:"notes"`
	Status      types.AppointmentStatus `gorm:"column:status;type:varchar(32);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointment"
}
