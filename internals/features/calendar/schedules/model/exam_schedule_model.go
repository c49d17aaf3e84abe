// file: internals/features/calendar/schedules/model/exam_schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sacel_backend/internals/helpers/dbtime"
)

// exam_type: test, exam, assessment, practical (CHECK di DB)
type ExamType string

const (
	ExamTypeTest       ExamType = "test"
	ExamTypeExam       ExamType = "exam"
	ExamTypeAssessment ExamType = "assessment"
	ExamTypePractical  ExamType = "practical"
)

// ExamScheduleModel: slot ujian satu tanggal.
type ExamScheduleModel struct {
	ExamScheduleID        uuid.UUID `gorm:"column:exam_schedule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"exam_schedule_id"`
	ExamScheduleTeacherID uuid.UUID `gorm:"column:exam_schedule_teacher_id;type:uuid;not null;index" json:"exam_schedule_teacher_id"`

	ExamScheduleName       string   `gorm:"column:exam_schedule_name;type:varchar(100);not null" json:"exam_schedule_name"`
	ExamScheduleSubject    string   `gorm:"column:exam_schedule_subject;type:varchar(100);not null" json:"exam_schedule_subject"`
	ExamScheduleGradeLevel int      `gorm:"column:exam_schedule_grade_level;not null" json:"exam_schedule_grade_level"`
	ExamScheduleType       ExamType `gorm:"column:exam_schedule_type;type:varchar(20);not null;default:'test'" json:"exam_schedule_type"`
	ExamScheduleRoom       *string  `gorm:"column:exam_schedule_room;type:varchar(50)" json:"exam_schedule_room,omitempty"`

	ExamScheduleDate            time.Time  `gorm:"column:exam_schedule_date;type:date;not null;index" json:"exam_schedule_date"`
	ExamScheduleStartTime       dbtime.Tod `gorm:"column:exam_schedule_start_time;type:time;not null" json:"exam_schedule_start_time"`
	ExamScheduleDurationMinutes int        `gorm:"column:exam_schedule_duration_minutes;not null" json:"exam_schedule_duration_minutes"`

	ExamScheduleMaxMarks     int     `gorm:"column:exam_schedule_max_marks;not null;default:100" json:"exam_schedule_max_marks"`
	ExamScheduleInstructions *string `gorm:"column:exam_schedule_instructions;type:text" json:"exam_schedule_instructions,omitempty"`
	ExamScheduleIsPublished  bool    `gorm:"column:exam_schedule_is_published;not null;default:false" json:"exam_schedule_is_published"`

	ExamScheduleCreatedAt time.Time      `gorm:"column:exam_schedule_created_at;type:timestamptz;not null;default:now();autoCreateTime" json:"exam_schedule_created_at"`
	ExamScheduleUpdatedAt time.Time      `gorm:"column:exam_schedule_updated_at;type:timestamptz;not null;default:now();autoUpdateTime" json:"exam_schedule_updated_at"`
	ExamScheduleDeletedAt gorm.DeletedAt `gorm:"column:exam_schedule_deleted_at;index" json:"exam_schedule_deleted_at,omitempty"`
}

func (ExamScheduleModel) TableName() string { return "exam_schedules" }

// EndTime: waktu selesai = mulai + durasi.
func (m *ExamScheduleModel) EndTime() dbtime.Tod {
	return dbtime.From(m.ExamScheduleStartTime.Add(time.Duration(m.ExamScheduleDurationMinutes) * time.Minute))
}
