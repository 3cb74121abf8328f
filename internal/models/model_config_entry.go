package models

import "time"

// ConfigEntry is a per-user key/value setting. Defaults are seeded at signup.
type ConfigEntry struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_config_user_key,priority:1" json:"user_id"`
	Key       string    `gorm:"column:key;type:varchar(64);not null;uniqueIndex:idx_config_user_key,priority:2" json:"key"`
	Value     string    `gorm:"column:value;type:varchar(255)" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ConfigEntry) TableName() string {
	return "config_entry"
}
