// file: internals/features/calendar/availability/dto/availability_dto.go
package dto

import (
	"github.com/google/uuid"

	"sacel_backend/internals/features/calendar/availability/model"
	helper "sacel_backend/internals/helpers"
	"sacel_backend/internals/helpers/dbtime"
)

type CreateAvailabilitySlotRequest struct {
	// 0=Senin .. 6=Minggu
	AvailabilitySlotDayOfWeek int    `json:"availability_slot_day_of_week" validate:"gte=0,lte=6"`
	AvailabilitySlotStartTime string `json:"availability_slot_start_time" validate:"required"`
	AvailabilitySlotEndTime   string `json:"availability_slot_end_time" validate:"required"`

	AvailabilitySlotIsAvailable *bool   `json:"availability_slot_is_available,omitempty"`
	AvailabilitySlotNotes       *string `json:"availability_slot_notes,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateAvailabilitySlotRequest) ToModel(userID uuid.UUID) (*model.AvailabilitySlotModel, error) {
	start, err := dbtime.Parse(r.AvailabilitySlotStartTime)
	if err != nil {
		return nil, helper.NewServiceError(helper.ErrKindValidation, "availability_slot_start_time", "format jam harus HH:mm")
	}
	end, err := dbtime.Parse(r.AvailabilitySlotEndTime)
	if err != nil {
		return nil, helper.NewServiceError(helper.ErrKindValidation, "availability_slot_end_time", "format jam harus HH:mm")
	}
	if start.MinutesOfDay() >= end.MinutesOfDay() {
		return nil, helper.NewServiceError(helper.ErrKindInvalidInterval, "availability_slot_end_time", "jam selesai harus setelah jam mulai")
	}

	available := true
	if r.AvailabilitySlotIsAvailable != nil {
		available = *r.AvailabilitySlotIsAvailable
	}
	return &model.AvailabilitySlotModel{
		AvailabilitySlotUserID:      userID,
		AvailabilitySlotDayOfWeek:   r.AvailabilitySlotDayOfWeek,
		AvailabilitySlotStartTime:   start,
		AvailabilitySlotEndTime:     end,
		AvailabilitySlotIsAvailable: available,
		AvailabilitySlotNotes:       r.AvailabilitySlotNotes,
	}, nil
}
