// file: internals/features/calendar/events/model/event_reminder_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reminder_channel_enum ('notification','email','sms')
type ReminderChannel string

const (
	ReminderChannelNotification ReminderChannel = "notification"
	ReminderChannelEmail        ReminderChannel = "email"
	ReminderChannelSMS          ReminderChannel = "sms"
)

// EventReminderModel: konfigurasi pengingat per event.
// User nil = berlaku untuk creator + semua attendee.
// Status "terkirim" TIDAK disimpan di sini — per occurrence ada di
// reminder_deliveries (satu event berulang = satu lifecycle per occurrence).
type EventReminderModel struct {
	EventReminderID      uuid.UUID  `gorm:"column:event_reminder_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_reminder_id"`
	EventReminderEventID uuid.UUID  `gorm:"column:event_reminder_event_id;type:uuid;not null;index" json:"event_reminder_event_id"`
	EventReminderUserID  *uuid.UUID `gorm:"column:event_reminder_user_id;type:uuid;index" json:"event_reminder_user_id,omitempty"`

	EventReminderChannel       ReminderChannel `gorm:"column:event_reminder_channel;type:reminder_channel_enum;not null;default:'notification'" json:"event_reminder_channel"`
	EventReminderMinutesBefore int             `gorm:"column:event_reminder_minutes_before;not null;default:60" json:"event_reminder_minutes_before"`
	EventReminderIsActive      bool            `gorm:"column:event_reminder_is_active;not null;default:true" json:"event_reminder_is_active"`

	EventReminderCreatedAt time.Time      `gorm:"column:event_reminder_created_at;type:timestamptz;not null;default:now();autoCreateTime" json:"event_reminder_created_at"`
	EventReminderDeletedAt gorm.DeletedAt `gorm:"column:event_reminder_deleted_at;index" json:"event_reminder_deleted_at,omitempty"`
}

func (EventReminderModel) TableName() string { return "event_reminders" }
