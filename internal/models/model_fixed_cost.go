package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedCost is a recurring vehicle cost prorated into the real-profit report.
type FixedCost struct {
	ID     string          `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string          `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Name   string          `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Value  decimal.Decimal `gorm:"column:value;type:numeric(10,2);not null;default:0" json:"value"`
	// Kind selects the proration window: insurance, tax, rent or financing.
	Kind      string    `gorm:"column:kind;type:varchar(32);not null" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FixedCost) TableName() string {
	return "fixed_cost"
}
