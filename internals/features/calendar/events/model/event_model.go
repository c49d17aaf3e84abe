// file: internals/features/calendar/events/model/event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================================
   ENUMS (selaras CHECK constraint di DB)
========================================================= */

// event_type_enum ('class','meeting','exam','assignment','personal','holiday')
type EventType string

const (
	EventTypeClass      EventType = "class"
	EventTypeMeeting    EventType = "meeting"
	EventTypeExam       EventType = "exam"
	EventTypeAssignment EventType = "assignment"
	EventTypePersonal   EventType = "personal"
	EventTypeHoliday    EventType = "holiday"
)

// event_priority_enum ('normal','high','urgent')
type EventPriority string

const (
	EventPriorityNormal EventPriority = "normal"
	EventPriorityHigh   EventPriority = "high"
	EventPriorityUrgent EventPriority = "urgent"
)

/* =========================================================
   RECURRENCE RULE (disimpan jsonb di kolom event_recurrence)
========================================================= */

type RecurrenceFreq string

const (
	RecurrenceDaily   RecurrenceFreq = "daily"
	RecurrenceWeekly  RecurrenceFreq = "weekly"
	RecurrenceMonthly RecurrenceFreq = "monthly"
)

// RecurrenceRule: pola pengulangan event.
// Weekday pakai konvensi 0=Senin .. 6=Minggu.
// Monthly = by-weekday: WeekOfMonth 1..5, atau -1 untuk pekan terakhir;
// kalau kosong, diturunkan dari tanggal mulai event.
type RecurrenceRule struct {
	Freq        RecurrenceFreq `json:"freq"`
	Interval    int            `json:"interval"`
	ByWeekday   []int          `json:"by_weekday,omitempty"`
	WeekOfMonth *int           `json:"week_of_month,omitempty"`
	Until       *time.Time     `json:"until,omitempty"`
	Count       *int           `json:"count,omitempty"`
}

/* =========================================================
   MODEL: events
========================================================= */

type EventModel struct {
	EventID         uuid.UUID  `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventCreatorID  uuid.UUID  `gorm:"column:event_creator_id;type:uuid;not null;index" json:"event_creator_id"`
	EventCalendarID *uuid.UUID `gorm:"column:event_calendar_id;type:uuid;index" json:"event_calendar_id,omitempty"`

	// core info
	EventTitle string  `gorm:"column:event_title;type:varchar(200);not null" json:"event_title"`
	EventDesc  *string `gorm:"column:event_desc;type:text" json:"event_desc,omitempty"`

	// waktu: disimpan timestamptz (UTC), zona asal di event_timezone
	EventStart    time.Time `gorm:"column:event_start;type:timestamptz;not null;index" json:"event_start"`
	EventEnd      time.Time `gorm:"column:event_end;type:timestamptz;not null" json:"event_end"`
	EventTimezone string    `gorm:"column:event_timezone;type:varchar(50);not null;default:'UTC'" json:"event_timezone"`
	EventAllDay   bool      `gorm:"column:event_all_day;not null;default:false" json:"event_all_day"`

	EventType     EventType     `gorm:"column:event_type;type:event_type_enum;not null;default:'personal'" json:"event_type"`
	EventPriority EventPriority `gorm:"column:event_priority;type:event_priority_enum;not null;default:'normal'" json:"event_priority"`
	EventLocation *string       `gorm:"column:event_location;type:varchar(200)" json:"event_location,omitempty"`

	// pola berulang (nil = sekali jalan)
	EventRecurrence *datatypes.JSONType[RecurrenceRule] `gorm:"column:event_recurrence;type:jsonb" json:"event_recurrence,omitempty"`

	// metadata bebas (opaque key-value)
	EventMetadata datatypes.JSONMap `gorm:"column:event_metadata;type:jsonb" json:"event_metadata,omitempty"`

	// optimistic lock: setiap update menaikkan revision; mismatch = StaleWrite
	EventRevision int `gorm:"column:event_revision;not null;default:1" json:"event_revision"`

	// audit
	EventCreatedAt time.Time      `gorm:"column:event_created_at;type:timestamptz;not null;default:now();autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time      `gorm:"column:event_updated_at;type:timestamptz;not null;default:now();autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;index" json:"event_deleted_at,omitempty"`
}

func (EventModel) TableName() string { return "events" }

// RecurrenceRuleOrNil: akses aman ke rule jsonb.
func (m *EventModel) RecurrenceRuleOrNil() *RecurrenceRule {
	if m.EventRecurrence == nil {
		return nil
	}
	r := m.EventRecurrence.Data()
	if r.Freq == "" {
		return nil
	}
	return &r
}

// IsRecurring: true bila event punya rule pengulangan.
func (m *EventModel) IsRecurring() bool { return m.RecurrenceRuleOrNil() != nil }

// Duration: lama satu occurrence.
func (m *EventModel) Duration() time.Duration { return m.EventEnd.Sub(m.EventStart) }
