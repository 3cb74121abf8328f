package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// PaymentEventLog is the audit trail of provider webhook deliveries. Every
// event is recorded before reconciliation so failed renewals can be replayed.
type PaymentEventLog struct {
	ID       string              `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Provider types.PaymentMethod `gorm:"column:provider;type:varchar(32);not null;index" json:"provider"`
	// EventType is the provider's own event name, e.g. checkout.session.completed.
	EventType string `gorm:"column:event_type;type:varchar(64);not null" json:"event_type"`
	// ExternalID is the provider-side event or payment id.
	ExternalID string `gorm:"column:external_id;type:varchar(128);index" json:"external_id"`
	// Payload stores the raw event body as delivered.
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb;default:'{}'" json:"payload"`
	Processed bool           `gorm:"column:processed;not null;default:false" json:"processed"`
	Error     string         `gorm:"column:error;type:text" json:"error"`
	CreatedAt time.Time      `json:"created_at"`
}

func (PaymentEventLog) TableName() string {
	return "payment_event_log"
}
