package models

import "time"

// UserAchievement marks an unlocked badge. The unique index keeps grants
// idempotent.
type UserAchievement struct {
	ID            string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID        string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_achievement,priority:1" json:"user_id"`
	AchievementID string    `gorm:"column:achievement_id;type:varchar(64);not null;uniqueIndex:idx_user_achievement,priority:2" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"column:unlocked_at;not null" json:"unlocked_at"`
	Seen          bool      `gorm:"column:seen;not null;default:false" json:"seen"`
}

func (UserAchievement) TableName() string {
	return "user_achievement"
}
