package models

import (
	"time"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

type TicketMessage struct {
	ID        string             `gorm:"column:id;type:uuid;primary_key" json:"id"`
	TicketID  string             `gorm:"column:ticket_id;type:uuid;not null;index" json:"ticket_id"`
	Sender    types.TicketSender `gorm:"column:sender;type:varchar(16);not null" json:"sender"`
	Message   string             `gorm:"column:message;type:text;not null" json:"message"`
	CreatedAt time.Time          `json:"created_at"`
}

func (TicketMessage) TableName() string {
	return "ticket_message"
}
