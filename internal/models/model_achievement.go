package models

// Achievement is a catalog entry. The ID is a stable slug referenced by the
// gamification engine; rows are seeded on startup.
type Achievement struct {
	ID          string `gorm:"column:id;type:varchar(64);primary_key" json:"id"`
	Name        string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Description string `gorm:"column:description;type:varchar(255)" json:"description"`
	Icon        string `gorm:"column:icon;type:varchar(16)" json:"icon"`
	Category    string `gorm:"column:category;type:varchar(32);not null" json:"category"`
	XP          int    `gorm:"column:xp;not null;default:0" json:"xp"`
}

func (Achievement) TableName() string {
	return "achievement"
}
