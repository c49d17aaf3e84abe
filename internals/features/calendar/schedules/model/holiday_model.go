// file: internals/features/calendar/schedules/model/holiday_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HolidayModel: tanggal non-schedulable. Recurring=true berarti berulang
// tiap tahun pada bulan+tanggal yang sama.
type HolidayModel struct {
	HolidayID uuid.UUID `gorm:"column:holiday_id;type:uuid;default:gen_random_uuid();primaryKey" json:"holiday_id"`

	HolidayName string    `gorm:"column:holiday_name;type:varchar(100);not null" json:"holiday_name"`
	HolidayDate time.Time `gorm:"column:holiday_date;type:date;not null;index" json:"holiday_date"`
	HolidayDesc *string   `gorm:"column:holiday_desc;type:text" json:"holiday_desc,omitempty"`

	// public, school, religious, ...
	HolidayType string `gorm:"column:holiday_type;type:varchar(20);not null;default:'public'" json:"holiday_type"`

	HolidayIsRecurring bool `gorm:"column:holiday_is_recurring;not null;default:true" json:"holiday_is_recurring"`
	HolidayIsActive    bool `gorm:"column:holiday_is_active;not null;default:true" json:"holiday_is_active"`

	HolidayCreatedAt time.Time      `gorm:"column:holiday_created_at;type:timestamptz;not null;default:now();autoCreateTime" json:"holiday_created_at"`
	HolidayDeletedAt gorm.DeletedAt `gorm:"column:holiday_deleted_at;index" json:"holiday_deleted_at,omitempty"`
}

func (HolidayModel) TableName() string { return "holidays" }

// CoversDate: apakah holiday jatuh pada tanggal d (memperhitungkan recurring tahunan).
func (m *HolidayModel) CoversDate(d time.Time) bool {
	hd := m.HolidayDate
	if m.HolidayIsRecurring {
		return hd.Month() == d.Month() && hd.Day() == d.Day()
	}
	return hd.Year() == d.Year() && hd.Month() == d.Month() && hd.Day() == d.Day()
}
