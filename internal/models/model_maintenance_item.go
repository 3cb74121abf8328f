package models

import "time"

// MaintenanceItem is a pending service target on the vehicle odometer.
type MaintenanceItem struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	// TargetKM is the odometer reading at which the service is due.
	TargetKM  float64   `gorm:"column:target_km;not null" json:"target_km"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MaintenanceItem) TableName() string {
	return "maintenance_item"
}
