// file: internals/features/calendar/events/dto/calendar_dto.go
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

type CreateCalendarRequest struct {
	CalendarName  string  `json:"calendar_name" validate:"required,min=1,max=100"`
	CalendarDesc  *string `json:"calendar_desc,omitempty" validate:"omitempty,max=1000"`
	CalendarColor string  `json:"calendar_color" validate:"omitempty,hexcolor"`

	CalendarIsPrimary bool   `json:"calendar_is_primary"`
	CalendarTimezone  string `json:"calendar_timezone" validate:"omitempty,max=50"`
}

func (r *CreateCalendarRequest) Normalize() {
	r.CalendarName = strings.TrimSpace(r.CalendarName)
	if r.CalendarColor == "" {
		r.CalendarColor = "#3B82F6"
	}
	if strings.TrimSpace(r.CalendarTimezone) == "" {
		r.CalendarTimezone = "UTC"
	}
}

func (r *CreateCalendarRequest) ToModel(ownerID uuid.UUID) *model.CalendarModel {
	return &model.CalendarModel{
		CalendarOwnerID:   ownerID,
		CalendarName:      r.CalendarName,
		CalendarDesc:      r.CalendarDesc,
		CalendarColor:     r.CalendarColor,
		CalendarIsPrimary: r.CalendarIsPrimary,
		CalendarIsVisible: true,
		CalendarTimezone:  r.CalendarTimezone,
	}
}

type UpdateCalendarRequest struct {
	CalendarName      PatchField[string] `json:"calendar_name"`
	CalendarDesc      PatchField[string] `json:"calendar_desc"`
	CalendarColor     PatchField[string] `json:"calendar_color"`
	CalendarIsVisible PatchField[bool]   `json:"calendar_is_visible"`
	CalendarTimezone  PatchField[string] `json:"calendar_timezone"`
}

type ShareCalendarRequest struct {
	CalendarShareUserID     uuid.UUID `json:"calendar_share_user_id" validate:"required"`
	CalendarSharePermission string    `json:"calendar_share_permission" validate:"omitempty,oneof=read comment edit"`
}

func (r *ShareCalendarRequest) Normalize() {
	if r.CalendarSharePermission == "" {
		r.CalendarSharePermission = string(model.CalendarPermissionRead)
	}
}

/* =========================================================
   RESPONSE
========================================================= */

type CalendarResponse struct {
	CalendarID      uuid.UUID `json:"calendar_id"`
	CalendarOwnerID uuid.UUID `json:"calendar_owner_id"`

	CalendarName  string  `json:"calendar_name"`
	CalendarDesc  *string `json:"calendar_desc,omitempty"`
	CalendarColor string  `json:"calendar_color"`

	CalendarIsPrimary bool   `json:"calendar_is_primary"`
	CalendarIsVisible bool   `json:"calendar_is_visible"`
	CalendarTimezone  string `json:"calendar_timezone"`

	CalendarCreatedAt time.Time `json:"calendar_created_at"`
	CalendarUpdatedAt time.Time `json:"calendar_updated_at"`
}

func FromCalendarModel(m *model.CalendarModel) *CalendarResponse {
	return &CalendarResponse{
		CalendarID:        m.CalendarID,
		CalendarOwnerID:   m.CalendarOwnerID,
		CalendarName:      m.CalendarName,
		CalendarDesc:      m.CalendarDesc,
		CalendarColor:     m.CalendarColor,
		CalendarIsPrimary: m.CalendarIsPrimary,
		CalendarIsVisible: m.CalendarIsVisible,
		CalendarTimezone:  m.CalendarTimezone,
		CalendarCreatedAt: m.CalendarCreatedAt,
		CalendarUpdatedAt: m.CalendarUpdatedAt,
	}
}

type CalendarShareResponse struct {
	CalendarShareID         uuid.UUID `json:"calendar_share_id"`
	CalendarShareCalendarID uuid.UUID `json:"calendar_share_calendar_id"`
	CalendarShareUserID     uuid.UUID `json:"calendar_share_user_id"`
	CalendarSharePermission string    `json:"calendar_share_permission"`
	CalendarShareSharedAt   time.Time `json:"calendar_share_shared_at"`
}

func FromCalendarShareModel(m *model.CalendarShareModel) *CalendarShareResponse {
	return &CalendarShareResponse{
		CalendarShareID:         m.CalendarShareID,
		CalendarShareCalendarID: m.CalendarShareCalendarID,
		CalendarShareUserID:     m.CalendarShareUserID,
		CalendarSharePermission: string(m.CalendarSharePermission),
		CalendarShareSharedAt:   m.CalendarShareSharedAt,
	}
}
