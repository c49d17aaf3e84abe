// file: internals/features/calendar/schedules/model/schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"sacel_backend/internals/helpers/dbtime"
)

// ScheduleModel: slot kelas mingguan. Tidak punya rentang tanggal sendiri —
// diinstansiasi terhadap term (term_start/term_end opsional).
// Konvensi hari: 0=Senin .. 6=Minggu.
type ScheduleModel struct {
	ScheduleID        uuid.UUID `gorm:"column:schedule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"schedule_id"`
	ScheduleTeacherID uuid.UUID `gorm:"column:schedule_teacher_id;type:uuid;not null;index" json:"schedule_teacher_id"`

	ScheduleName       string  `gorm:"column:schedule_name;type:varchar(100);not null" json:"schedule_name"`
	ScheduleSubject    string  `gorm:"column:schedule_subject;type:varchar(100);not null" json:"schedule_subject"`
	ScheduleGradeLevel int     `gorm:"column:schedule_grade_level;not null" json:"schedule_grade_level"`
	ScheduleRoom       *string `gorm:"column:schedule_room;type:varchar(50)" json:"schedule_room,omitempty"`

	ScheduleDayOfWeek int        `gorm:"column:schedule_day_of_week;not null;index" json:"schedule_day_of_week"`
	ScheduleStartTime dbtime.Tod `gorm:"column:schedule_start_time;type:time;not null" json:"schedule_start_time"`
	ScheduleEndTime   dbtime.Tod `gorm:"column:schedule_end_time;type:time;not null" json:"schedule_end_time"`

	ScheduleTermStart *time.Time `gorm:"column:schedule_term_start;type:date" json:"schedule_term_start,omitempty"`
	ScheduleTermEnd   *time.Time `gorm:"column:schedule_term_end;type:date" json:"schedule_term_end,omitempty"`

	// nomor minggu untuk jadwal selang-seling (kosong = tiap minggu)
	ScheduleRecurringWeeks pq.Int64Array `gorm:"column:schedule_recurring_weeks;type:int[]" json:"schedule_recurring_weeks,omitempty"`

	ScheduleNotes    *string `gorm:"column:schedule_notes;type:text" json:"schedule_notes,omitempty"`
	ScheduleIsActive bool    `gorm:"column:schedule_is_active;not null;default:true" json:"schedule_is_active"`

	ScheduleCreatedAt time.Time      `gorm:"column:schedule_created_at;type:timestamptz;not null;default:now();autoCreateTime" json:"schedule_created_at"`
	ScheduleUpdatedAt time.Time      `gorm:"column:schedule_updated_at;type:timestamptz;not null;default:now();autoUpdateTime" json:"schedule_updated_at"`
	ScheduleDeletedAt gorm.DeletedAt `gorm:"column:schedule_deleted_at;index" json:"schedule_deleted_at,omitempty"`
}

func (ScheduleModel) TableName() string { return "schedules" }
