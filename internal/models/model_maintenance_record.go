package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaintenanceRecord is a completed service, kept as history.
type MaintenanceRecord struct {
	ID          string          `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID      string          `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	ItemName    string          `gorm:"column:item_name;type:varchar(128);not null" json:"item_name"`
	ServiceDate time.Time       `gorm:"column:service_date;type:date;not null" json:"service_date"`
	ServiceKM   float64         `gorm:"column:service_km;not null" json:"service_km"`
	Cost        decimal.Decimal `gorm:"column:cost;type:numeric(10,2);not null;default:0" json:"cost"`
	Notes       string          `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (MaintenanceRecord) TableName() string {
	return "maintenance_record"
}
