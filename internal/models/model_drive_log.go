package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DriveLog is one working day of earnings, expenses and activity.
type DriveLog struct {
	ID      string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID  string    `gorm:"column:user_id;type:uuid;not null;index:idx_drive_log_user_date,priority:1" json:"user_id"`
	LogDate time.Time `gorm:"column:log_date;type:date;not null;index:idx_drive_log_user_date,priority:2" json:"log_date"`

	GrossEarnings decimal.Decimal `gorm:"column:gross_earnings;type:numeric(10,2);not null;default:0" json:"gross_earnings"`
	// per-source earnings; GrossEarnings is stored separately and is the
	// authoritative total
	EarningsUber    decimal.Decimal `gorm:"column:earnings_uber;type:numeric(10,2);not null;default:0" json:"earnings_uber"`
	EarningsPop99   decimal.Decimal `gorm:"column:earnings_pop99;type:numeric(10,2);not null;default:0" json:"earnings_pop99"`
	EarningsPrivate decimal.Decimal `gorm:"column:earnings_private;type:numeric(10,2);not null;default:0" json:"earnings_private"`
	EarningsOther   decimal.Decimal `gorm:"column:earnings_other;type:numeric(10,2);not null;default:0" json:"earnings_other"`

	ExpenseFuel        decimal.Decimal `gorm:"column:expense_fuel;type:numeric(10,2);not null;default:0" json:"expense_fuel"`
	ExpenseFood        decimal.Decimal `gorm:"column:expense_food;type:numeric(10,2);not null;default:0" json:"expense_food"`
	ExpenseMaintenance decimal.Decimal `gorm:"column:expense_maintenance;type:numeric(10,2);not null;default:0" json:"expense_maintenance"`

	RidesUber    int `gorm:"column:rides_uber;not null;default:0" json:"rides_uber"`
	RidesPop99   int `gorm:"column:rides_pop99;not null;default:0" json:"rides_pop99"`
	RidesPrivate int `gorm:"column:rides_private;not null;default:0" json:"rides_private"`
	RidesOther   int `gorm:"column:rides_other;not null;default:0" json:"rides_other"`

	DistanceKM  float64 `gorm:"column:distance_km;not null;default:0" json:"distance_km"`
	HoursWorked float64 `gorm:"column:hours_worked;not null;default:0" json:"hours_worked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DriveLog) TableName() string {
	return "drive_log"
}

// NetProfit is gross earnings minus the variable expenses of the day.
func (d *DriveLog) NetProfit() decimal.Decimal {
	return d.GrossEarnings.Sub(d.ExpenseFuel).Sub(d.ExpenseFood).Sub(d.ExpenseMaintenance)
}
