package models

import (
	"time"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// SubscriberSnapshot is a daily count of users per category and tier,
// written by the nightly job and read by the admin growth charts.
type SubscriberSnapshot struct {
	ID           string             `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SnapshotDate string             `gorm:"column:snapshot_date;type:varchar(10);not null;uniqueIndex:idx_snapshot_date_bucket,priority:1" json:"snapshot_date"`
	Category     types.UserCategory `gorm:"column:category;type:varchar(32);not null;uniqueIndex:idx_snapshot_date_bucket,priority:2" json:"category"`
	PlanTier     types.PlanTier     `gorm:"column:plan_tier;type:varchar(32);not null;uniqueIndex:idx_snapshot_date_bucket,priority:3" json:"plan_tier"`
	Count        int                `gorm:"column:count;not null;default:0" json:"count"`
	CreatedAt    time.Time          `json:"created_at"`
}

func (SubscriberSnapshot) TableName() string {
	return "subscriber_snapshot"
}
