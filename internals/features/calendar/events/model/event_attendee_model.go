// file: internals/features/calendar/events/model/event_attendee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// attendee_status_enum ('invited','accepted','declined','tentative')
type AttendeeStatus string

const (
	AttendeeStatusInvited   AttendeeStatus = "invited"
	AttendeeStatusAccepted  AttendeeStatus = "accepted"
	AttendeeStatusDeclined  AttendeeStatus = "declined"
	AttendeeStatusTentative AttendeeStatus = "tentative"
)

// attendee_role_enum ('organizer','attendee','optional')
type AttendeeRole string

const (
	AttendeeRoleOrganizer AttendeeRole = "organizer"
	AttendeeRoleAttendee  AttendeeRole = "attendee"
	AttendeeRoleOptional  AttendeeRole = "optional"
)

// Unik per (event, user) — UNIQUE constraint uq_event_attendee di DB.
type EventAttendeeModel struct {
	EventAttendeeID      uuid.UUID `gorm:"column:event_attendee_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_attendee_id"`
	EventAttendeeEventID uuid.UUID `gorm:"column:event_attendee_event_id;type:uuid;not null;uniqueIndex:uq_event_attendee" json:"event_attendee_event_id"`
	EventAttendeeUserID  uuid.UUID `gorm:"column:event_attendee_user_id;type:uuid;not null;uniqueIndex:uq_event_attendee;index" json:"event_attendee_user_id"`

	EventAttendeeStatus AttendeeStatus `gorm:"column:event_attendee_status;type:attendee_status_enum;not null;default:'invited'" json:"event_attendee_status"`
	EventAttendeeRole   AttendeeRole   `gorm:"column:event_attendee_role;type:attendee_role_enum;not null;default:'attendee'" json:"event_attendee_role"`

	EventAttendeeInvitedAt   time.Time  `gorm:"column:event_attendee_invited_at;type:timestamptz;not null;default:now()" json:"event_attendee_invited_at"`
	EventAttendeeRespondedAt *time.Time `gorm:"column:event_attendee_responded_at;type:timestamptz" json:"event_attendee_responded_at,omitempty"`
	EventAttendeeNotes       *string    `gorm:"column:event_attendee_notes;type:text" json:"event_attendee_notes,omitempty"`
}

func (EventAttendeeModel) TableName() string { return "event_attendees" }
