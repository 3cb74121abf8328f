package models

import (
	"time"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

type SupportTicket struct {
	ID        string             `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID    string             `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Subject   string             `gorm:"column:subject;type:varchar(255);not null" json:"subject"`
	Message   string             `gorm:"column:message;type:text;not null" json:"message"`
	Status    types.TicketStatus `gorm:"column:status;type:varchar(32);not null;default:'open';index" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (SupportTicket) TableName() string {
	return "support_ticket"
}
