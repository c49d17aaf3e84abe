// file: internals/features/calendar/events/dto/event_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sacel_backend/internals/features/calendar/events/model"
)

/* =========================================================
   PatchField: tri-state untuk PATCH
   - Present=false  → field tidak dikirim, jangan disentuh
   - Present=true, Value=nil → eksplisit di-null-kan
   - Present=true, Value!=nil → di-set
========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

/* =========================================================
   REQUEST: CREATE
========================================================= */

type CreateEventRequest struct {
	EventCalendarID *uuid.UUID `json:"event_calendar_id,omitempty"`

	EventTitle string  `json:"event_title" validate:"required,min=1,max=200"`
	EventDesc  *string `json:"event_desc,omitempty" validate:"omitempty,max=2000"`

	EventStart    time.Time `json:"event_start" validate:"required"`
	EventEnd      time.Time `json:"event_end" validate:"required"`
	EventTimezone string    `json:"event_timezone" validate:"omitempty,max=50"`
	EventAllDay   bool      `json:"event_all_day"`

	EventType     string  `json:"event_type" validate:"omitempty,oneof=class meeting exam assignment personal holiday"`
	EventPriority string  `json:"event_priority" validate:"omitempty,oneof=normal high urgent"`
	EventLocation *string `json:"event_location,omitempty" validate:"omitempty,max=200"`

	EventRecurrence *model.RecurrenceRule `json:"event_recurrence,omitempty"`
	EventMetadata   map[string]any        `json:"event_metadata,omitempty"`

	// undangan awal (selain creator)
	AttendeeUserIDs []uuid.UUID `json:"attendee_user_ids,omitempty" validate:"omitempty,dive,required"`

	// pengingat kustom; kosong = default 60 menit notification
	Reminders []CreateReminderRequest `json:"reminders,omitempty" validate:"omitempty,dive"`

	// true = jalankan conflict detector, hasilnya ikut di response (advisory)
	CheckConflicts bool `json:"check_conflicts"`
}

type CreateReminderRequest struct {
	EventReminderUserID        *uuid.UUID `json:"event_reminder_user_id,omitempty"`
	EventReminderChannel       string     `json:"event_reminder_channel" validate:"omitempty,oneof=notification email sms"`
	EventReminderMinutesBefore int        `json:"event_reminder_minutes_before" validate:"gte=0,lte=20160"`
}

func (r *CreateEventRequest) Normalize() {
	r.EventTitle = strings.TrimSpace(r.EventTitle)
	if r.EventDesc != nil {
		d := strings.TrimSpace(*r.EventDesc)
		if d == "" {
			r.EventDesc = nil
		} else {
			r.EventDesc = &d
		}
	}
	if r.EventLocation != nil {
		l := strings.TrimSpace(*r.EventLocation)
		if l == "" {
			r.EventLocation = nil
		} else {
			r.EventLocation = &l
		}
	}
	if strings.TrimSpace(r.EventTimezone) == "" {
		r.EventTimezone = "UTC"
	}
	if r.EventType == "" {
		r.EventType = string(model.EventTypePersonal)
	}
	if r.EventPriority == "" {
		r.EventPriority = string(model.EventPriorityNormal)
	}
	for i := range r.Reminders {
		if r.Reminders[i].EventReminderChannel == "" {
			r.Reminders[i].EventReminderChannel = string(model.ReminderChannelNotification)
		}
	}
}

func (r *CreateEventRequest) ToModel(creatorID uuid.UUID) *model.EventModel {
	m := &model.EventModel{
		EventCreatorID:  creatorID,
		EventCalendarID: r.EventCalendarID,
		EventTitle:      r.EventTitle,
		EventDesc:       r.EventDesc,
		EventStart:      r.EventStart.UTC(),
		EventEnd:        r.EventEnd.UTC(),
		EventTimezone:   r.EventTimezone,
		EventAllDay:     r.EventAllDay,
		EventType:       model.EventType(r.EventType),
		EventPriority:   model.EventPriority(r.EventPriority),
		EventLocation:   r.EventLocation,
		EventRevision:   1,
	}
	if r.EventRecurrence != nil {
		jt := datatypes.NewJSONType(*r.EventRecurrence)
		m.EventRecurrence = &jt
	}
	if len(r.EventMetadata) > 0 {
		m.EventMetadata = datatypes.JSONMap(r.EventMetadata)
	}
	return m
}

/* =========================================================
   REQUEST: UPDATE (PATCH, tri-state)
========================================================= */

type UpdateEventRequest struct {
	// optimistic lock: wajib, dicocokkan dengan event_revision tersimpan
	ExpectedRevision int `json:"expected_revision" validate:"required,gte=1"`

	// single_occurrence butuh occurrence_start; default all_occurrences
	Scope           string     `json:"scope" validate:"omitempty,oneof=single_occurrence all_occurrences"`
	OccurrenceStart *time.Time `json:"occurrence_start,omitempty"`

	EventCalendarID PatchField[uuid.UUID] `json:"event_calendar_id"`

	EventTitle PatchField[string] `json:"event_title"`
	EventDesc  PatchField[string] `json:"event_desc"`

	EventStart    PatchField[time.Time] `json:"event_start"`
	EventEnd      PatchField[time.Time] `json:"event_end"`
	EventTimezone PatchField[string]    `json:"event_timezone"`
	EventAllDay   PatchField[bool]      `json:"event_all_day"`

	EventType     PatchField[string] `json:"event_type"`
	EventPriority PatchField[string] `json:"event_priority"`
	EventLocation PatchField[string] `json:"event_location"`

	EventRecurrence PatchField[model.RecurrenceRule] `json:"event_recurrence"`
	EventMetadata   PatchField[map[string]any]       `json:"event_metadata"`

	// true = jalankan conflict detector pada interval hasil edit (advisory)
	CheckConflicts bool `json:"check_conflicts"`
}

func (r *UpdateEventRequest) Normalize() {
	if r.Scope == "" {
		r.Scope = "all_occurrences"
	}
	if v, ok := r.EventTitle.Get(); ok && v != nil {
		t := strings.TrimSpace(*v)
		r.EventTitle.Value = &t
	}
}

/* =========================================================
   REQUEST: DELETE
========================================================= */

type DeleteEventRequest struct {
	Scope           string     `json:"scope" validate:"omitempty,oneof=single_occurrence all_occurrences"`
	OccurrenceStart *time.Time `json:"occurrence_start,omitempty"`
}

/* =========================================================
   RESPONSE
========================================================= */

type EventResponse struct {
	EventID         uuid.UUID  `json:"event_id"`
	EventCreatorID  uuid.UUID  `json:"event_creator_id"`
	EventCalendarID *uuid.UUID `json:"event_calendar_id,omitempty"`

	EventTitle string  `json:"event_title"`
	EventDesc  *string `json:"event_desc,omitempty"`

	EventStart    time.Time `json:"event_start"`
	EventEnd      time.Time `json:"event_end"`
	EventTimezone string    `json:"event_timezone"`
	EventAllDay   bool      `json:"event_all_day"`

	EventType     string  `json:"event_type"`
	EventPriority string  `json:"event_priority"`
	EventLocation *string `json:"event_location,omitempty"`

	EventRecurrence *model.RecurrenceRule `json:"event_recurrence,omitempty"`
	EventMetadata   map[string]any        `json:"event_metadata,omitempty"`

	EventRevision  int       `json:"event_revision"`
	EventCreatedAt time.Time `json:"event_created_at"`
	EventUpdatedAt time.Time `json:"event_updated_at"`
}

func FromEventModel(m *model.EventModel) *EventResponse {
	resp := &EventResponse{
		EventID:         m.EventID,
		EventCreatorID:  m.EventCreatorID,
		EventCalendarID: m.EventCalendarID,
		EventTitle:      m.EventTitle,
		EventDesc:       m.EventDesc,
		EventStart:      m.EventStart,
		EventEnd:        m.EventEnd,
		EventTimezone:   m.EventTimezone,
		EventAllDay:     m.EventAllDay,
		EventType:       string(m.EventType),
		EventPriority:   string(m.EventPriority),
		EventLocation:   m.EventLocation,
		EventRecurrence: m.RecurrenceRuleOrNil(),
		EventRevision:   m.EventRevision,
		EventCreatedAt:  m.EventCreatedAt,
		EventUpdatedAt:  m.EventUpdatedAt,
	}
	if m.EventMetadata != nil {
		resp.EventMetadata = map[string]any(m.EventMetadata)
	}
	return resp
}

// OccurrenceResponse: satu kemunculan event hasil ekspansi untuk view rentang.
type OccurrenceResponse struct {
	EventID    uuid.UUID `json:"event_id"`
	EventTitle string    `json:"event_title"`
	EventType  string    `json:"event_type"`

	OccurrenceStart time.Time `json:"occurrence_start"`
	OccurrenceEnd   time.Time `json:"occurrence_end"`
	Overridden      bool      `json:"overridden"`
	Recurring       bool      `json:"recurring"`
}
