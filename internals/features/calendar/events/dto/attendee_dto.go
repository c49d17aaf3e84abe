// file: internals/features/calendar/events/dto/attendee_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sacel_backend/internals/features/calendar/events/model"
)

/* =========================================================
   REQUEST
========================================================= */

type InviteAttendeesRequest struct {
	AttendeeUserIDs []uuid.UUID `json:"attendee_user_ids" validate:"required,min=1,dive,required"`
	AttendeeRole    string      `json:"attendee_role" validate:"omitempty,oneof=organizer attendee optional"`
}

func (r *InviteAttendeesRequest) Normalize() {
	if r.AttendeeRole == "" {
		r.AttendeeRole = string(model.AttendeeRoleAttendee)
	}
}

type RespondRequest struct {
	// target transisi; invited hanya status awal, bukan target
	AttendeeStatus string  `json:"attendee_status" validate:"required,oneof=accepted declined tentative"`
	AttendeeNotes  *string `json:"attendee_notes,omitempty" validate:"omitempty,max=500"`
}

func (r *RespondRequest) Normalize() {
	r.AttendeeStatus = strings.ToLower(strings.TrimSpace(r.AttendeeStatus))
	if r.AttendeeNotes != nil {
		n := strings.TrimSpace(*r.AttendeeNotes)
		if n == "" {
			r.AttendeeNotes = nil
		} else {
			r.AttendeeNotes = &n
		}
	}
}

/* =========================================================
   RESPONSE
========================================================= */

type AttendeeResponse struct {
	EventAttendeeID      uuid.UUID `json:"event_attendee_id"`
	EventAttendeeEventID uuid.UUID `json:"event_attendee_event_id"`
	EventAttendeeUserID  uuid.UUID `json:"event_attendee_user_id"`

	EventAttendeeStatus string `json:"event_attendee_status"`
	EventAttendeeRole   string `json:"event_attendee_role"`

	EventAttendeeInvitedAt   time.Time  `json:"event_attendee_invited_at"`
	EventAttendeeRespondedAt *time.Time `json:"event_attendee_responded_at,omitempty"`
	EventAttendeeNotes       *string    `json:"event_attendee_notes,omitempty"`
}

func FromAttendeeModel(m *model.EventAttendeeModel) *AttendeeResponse {
	return &AttendeeResponse{
		EventAttendeeID:          m.EventAttendeeID,
		EventAttendeeEventID:     m.EventAttendeeEventID,
		EventAttendeeUserID:      m.EventAttendeeUserID,
		EventAttendeeStatus:      string(m.EventAttendeeStatus),
		EventAttendeeRole:        string(m.EventAttendeeRole),
		EventAttendeeInvitedAt:   m.EventAttendeeInvitedAt,
		EventAttendeeRespondedAt: m.EventAttendeeRespondedAt,
		EventAttendeeNotes:       m.EventAttendeeNotes,
	}
}
