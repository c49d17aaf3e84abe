// file: internals/features/calendar/events/model/reminder_delivery_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ReminderDeliveryModel: ledger "sudah terkirim" per
// (event, occurrence start, user, channel). Baris ditulis dalam transaksi
// yang sama dengan handoff ke delivery sink: crash di tengah paling buruk
// menghasilkan kiriman duplikat, tidak pernah kehilangan kiriman.
type ReminderDeliveryModel struct {
	ReminderDeliveryID      uuid.UUID `gorm:"column:reminder_delivery_id;type:uuid;default:gen_random_uuid();primaryKey" json:"reminder_delivery_id"`
	ReminderDeliveryEventID uuid.UUID `gorm:"column:reminder_delivery_event_id;type:uuid;not null;uniqueIndex:uq_reminder_delivery" json:"reminder_delivery_event_id"`

	// start occurrence (UTC) — event berulang punya lifecycle per occurrence
	ReminderDeliveryOccurrenceStart time.Time `gorm:"column:reminder_delivery_occurrence_start;type:timestamptz;not null;uniqueIndex:uq_reminder_delivery" json:"reminder_delivery_occurrence_start"`

	ReminderDeliveryUserID  uuid.UUID       `gorm:"column:reminder_delivery_user_id;type:uuid;not null;uniqueIndex:uq_reminder_delivery" json:"reminder_delivery_user_id"`
	ReminderDeliveryChannel ReminderChannel `gorm:"column:reminder_delivery_channel;type:reminder_channel_enum;not null;uniqueIndex:uq_reminder_delivery" json:"reminder_delivery_channel"`

	ReminderDeliverySentAt time.Time `gorm:"column:reminder_delivery_sent_at;type:timestamptz;not null;default:now()" json:"reminder_delivery_sent_at"`
}

func (ReminderDeliveryModel) TableName() string { return "reminder_deliveries" }
