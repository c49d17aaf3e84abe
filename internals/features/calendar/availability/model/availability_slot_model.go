// file: internals/features/calendar/availability/model/availability_slot_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sacel_backend/internals/helpers/dbtime"
)

// AvailabilitySlotModel: jendela mingguan kapan user boleh di-booking untuk
// meeting ad-hoc. Konvensi hari: 0=Senin .. 6=Minggu.
// Slot available=false menang atas slot available=true yang tumpang tindih
// (fail-safe: ragu-ragu = tidak tersedia).
type AvailabilitySlotModel struct {
	AvailabilitySlotID     uuid.UUID `gorm:"column:availability_slot_id;type:uuid;default:gen_random_uuid();primaryKey" json:"availability_slot_id"`
	AvailabilitySlotUserID uuid.UUID `gorm:"column:availability_slot_user_id;type:uuid;not null;index" json:"availability_slot_user_id"`

	AvailabilitySlotDayOfWeek int        `gorm:"column:availability_slot_day_of_week;not null" json:"availability_slot_day_of_week"`
	AvailabilitySlotStartTime dbtime.Tod `gorm:"column:availability_slot_start_time;type:time;not null" json:"availability_slot_start_time"`
	AvailabilitySlotEndTime   dbtime.Tod `gorm:"column:availability_slot_end_time;type:time;not null" json:"availability_slot_end_time"`

	AvailabilitySlotIsAvailable bool    `gorm:"column:availability_slot_is_available;not null;default:true" json:"availability_slot_is_available"`
	AvailabilitySlotNotes       *string `gorm:"column:availability_slot_notes;type:text" json:"availability_slot_notes,omitempty"`

	AvailabilitySlotCreatedAt time.Time      `gorm:"column:availability_slot_created_at;type:timestamptz;not null;default:now();autoCreateTime" json:"availability_slot_created_at"`
	AvailabilitySlotUpdatedAt time.Time      `gorm:"column:availability_slot_updated_at;type:timestamptz;not null;default:now();autoUpdateTime" json:"availability_slot_updated_at"`
	AvailabilitySlotDeletedAt gorm.DeletedAt `gorm:"column:availability_slot_deleted_at;index" json:"availability_slot_deleted_at,omitempty"`
}

func (AvailabilitySlotModel) TableName() string { return "availability_slots" }
