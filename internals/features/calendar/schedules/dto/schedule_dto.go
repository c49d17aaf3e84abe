// file: internals/features/calendar/schedules/dto/schedule_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sacel_backend/internals/features/calendar/schedules/model"
	helper "sacel_backend/internals/helpers"
	"sacel_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST: schedule mingguan
========================================================= */

type CreateScheduleRequest struct {
	ScheduleName       string  `json:"schedule_name" validate:"required,min=1,max=100"`
	ScheduleSubject    string  `json:"schedule_subject" validate:"required,min=1,max=100"`
	ScheduleGradeLevel int     `json:"schedule_grade_level" validate:"required,gte=1,lte=12"`
	ScheduleRoom       *string `json:"schedule_room,omitempty" validate:"omitempty,max=50"`

	// 0=Senin .. 6=Minggu
	ScheduleDayOfWeek int    `json:"schedule_day_of_week" validate:"gte=0,lte=6"`
	ScheduleStartTime string `json:"schedule_start_time" validate:"required"`
	ScheduleEndTime   string `json:"schedule_end_time" validate:"required"`

	ScheduleTermStart *time.Time `json:"schedule_term_start,omitempty"`
	ScheduleTermEnd   *time.Time `json:"schedule_term_end,omitempty"`

	ScheduleRecurringWeeks []int64 `json:"schedule_recurring_weeks,omitempty"`
	ScheduleNotes          *string `json:"schedule_notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateScheduleRequest) Normalize() {
	r.ScheduleName = strings.TrimSpace(r.ScheduleName)
	r.ScheduleSubject = strings.TrimSpace(r.ScheduleSubject)
}

// ToModel: parse jam + cek urutan interval; error dikembalikan sebagai ServiceError.
func (r *CreateScheduleRequest) ToModel(teacherID uuid.UUID) (*model.ScheduleModel, error) {
	start, err := dbtime.Parse(r.ScheduleStartTime)
	if err != nil {
		return nil, helper.NewServiceError(helper.ErrKindValidation, "schedule_start_time", "format jam harus HH:mm")
	}
	end, err := dbtime.Parse(r.ScheduleEndTime)
	if err != nil {
		return nil, helper.NewServiceError(helper.ErrKindValidation, "schedule_end_time", "format jam harus HH:mm")
	}
	if start.MinutesOfDay() >= end.MinutesOfDay() {
		return nil, helper.NewServiceError(helper.ErrKindInvalidInterval, "schedule_end_time", "jam selesai harus setelah jam mulai")
	}
	if r.ScheduleTermStart != nil && r.ScheduleTermEnd != nil && !r.ScheduleTermStart.Before(*r.ScheduleTermEnd) {
		return nil, helper.NewServiceError(helper.ErrKindInvalidInterval, "schedule_term_end", "term_end harus setelah term_start")
	}
	return &model.ScheduleModel{
		ScheduleTeacherID:      teacherID,
		ScheduleName:           r.ScheduleName,
		ScheduleSubject:        r.ScheduleSubject,
		ScheduleGradeLevel:     r.ScheduleGradeLevel,
		ScheduleRoom:           r.ScheduleRoom,
		ScheduleDayOfWeek:      r.ScheduleDayOfWeek,
		ScheduleStartTime:      start,
		ScheduleEndTime:        end,
		ScheduleTermStart:      r.ScheduleTermStart,
		ScheduleTermEnd:        r.ScheduleTermEnd,
		ScheduleRecurringWeeks: pq.Int64Array(r.ScheduleRecurringWeeks),
		ScheduleNotes:          r.ScheduleNotes,
		ScheduleIsActive:       true,
	}, nil
}

type ScheduleResponse struct {
	ScheduleID        uuid.UUID `json:"schedule_id"`
	ScheduleTeacherID uuid.UUID `json:"schedule_teacher_id"`

	ScheduleName       string  `json:"schedule_name"`
	ScheduleSubject    string  `json:"schedule_subject"`
	ScheduleGradeLevel int     `json:"schedule_grade_level"`
	ScheduleRoom       *string `json:"schedule_room,omitempty"`

	ScheduleDayOfWeek int    `json:"schedule_day_of_week"`
	ScheduleStartTime string `json:"schedule_start_time"`
	ScheduleEndTime   string `json:"schedule_end_time"`

	ScheduleTermStart *time.Time `json:"schedule_term_start,omitempty"`
	ScheduleTermEnd   *time.Time `json:"schedule_term_end,omitempty"`

	ScheduleRecurringWeeks []int64 `json:"schedule_recurring_weeks,omitempty"`
	ScheduleNotes          *string `json:"schedule_notes,omitempty"`
	ScheduleIsActive       bool    `json:"schedule_is_active"`
}

func FromScheduleModel(m *model.ScheduleModel) *ScheduleResponse {
	return &ScheduleResponse{
		ScheduleID:             m.ScheduleID,
		ScheduleTeacherID:      m.ScheduleTeacherID,
		ScheduleName:           m.ScheduleName,
		ScheduleSubject:        m.ScheduleSubject,
		ScheduleGradeLevel:     m.ScheduleGradeLevel,
		ScheduleRoom:           m.ScheduleRoom,
		ScheduleDayOfWeek:      m.ScheduleDayOfWeek,
		ScheduleStartTime:      m.ScheduleStartTime.Format("15:04"),
		ScheduleEndTime:        m.ScheduleEndTime.Format("15:04"),
		ScheduleTermStart:      m.ScheduleTermStart,
		ScheduleTermEnd:        m.ScheduleTermEnd,
		ScheduleRecurringWeeks: []int64(m.ScheduleRecurringWeeks),
		ScheduleNotes:          m.ScheduleNotes,
		ScheduleIsActive:       m.ScheduleIsActive,
	}
}

/* =========================================================
   REQUEST: exam schedule
========================================================= */

type CreateExamScheduleRequest struct {
	ExamScheduleName       string  `json:"exam_schedule_name" validate:"required,min=1,max=100"`
	ExamScheduleSubject    string  `json:"exam_schedule_subject" validate:"required,min=1,max=100"`
	ExamScheduleGradeLevel int     `json:"exam_schedule_grade_level" validate:"required,gte=1,lte=12"`
	ExamScheduleType       string  `json:"exam_schedule_type" validate:"omitempty,oneof=test exam assessment practical"`
	ExamScheduleRoom       *string `json:"exam_schedule_room,omitempty" validate:"omitempty,max=50"`

	ExamScheduleDate            time.Time `json:"exam_schedule_date" validate:"required"`
	ExamScheduleStartTime       string    `json:"exam_schedule_start_time" validate:"required"`
	ExamScheduleDurationMinutes int       `json:"exam_schedule_duration_minutes" validate:"required,gte=5,lte=600"`

	ExamScheduleMaxMarks     int     `json:"exam_schedule_max_marks" validate:"omitempty,gte=1"`
	ExamScheduleInstructions *string `json:"exam_schedule_instructions,omitempty" validate:"omitempty,max=2000"`
}

func (r *CreateExamScheduleRequest) Normalize() {
	r.ExamScheduleName = strings.TrimSpace(r.ExamScheduleName)
	r.ExamScheduleSubject = strings.TrimSpace(r.ExamScheduleSubject)
	if r.ExamScheduleType == "" {
		r.ExamScheduleType = string(model.ExamTypeTest)
	}
	if r.ExamScheduleMaxMarks == 0 {
		r.ExamScheduleMaxMarks = 100
	}
}

func (r *CreateExamScheduleRequest) ToModel(teacherID uuid.UUID) (*model.ExamScheduleModel, error) {
	start, err := dbtime.Parse(r.ExamScheduleStartTime)
	if err != nil {
		return nil, helper.NewServiceError(helper.ErrKindValidation, "exam_schedule_start_time", "format jam harus HH:mm")
	}
	return &model.ExamScheduleModel{
		ExamScheduleTeacherID:       teacherID,
		ExamScheduleName:            r.ExamScheduleName,
		ExamScheduleSubject:         r.ExamScheduleSubject,
		ExamScheduleGradeLevel:      r.ExamScheduleGradeLevel,
		ExamScheduleType:            model.ExamType(r.ExamScheduleType),
		ExamScheduleRoom:            r.ExamScheduleRoom,
		ExamScheduleDate:            r.ExamScheduleDate,
		ExamScheduleStartTime:       start,
		ExamScheduleDurationMinutes: r.ExamScheduleDurationMinutes,
		ExamScheduleMaxMarks:        r.ExamScheduleMaxMarks,
		ExamScheduleInstructions:    r.ExamScheduleInstructions,
	}, nil
}

type ExamScheduleResponse struct {
	ExamScheduleID        uuid.UUID `json:"exam_schedule_id"`
	ExamScheduleTeacherID uuid.UUID `json:"exam_schedule_teacher_id"`

	ExamScheduleName       string  `json:"exam_schedule_name"`
	ExamScheduleSubject    string  `json:"exam_schedule_subject"`
	ExamScheduleGradeLevel int     `json:"exam_schedule_grade_level"`
	ExamScheduleType       string  `json:"exam_schedule_type"`
	ExamScheduleRoom       *string `json:"exam_schedule_room,omitempty"`

	ExamScheduleDate            time.Time `json:"exam_schedule_date"`
	ExamScheduleStartTime       string    `json:"exam_schedule_start_time"`
	ExamScheduleEndTime         string    `json:"exam_schedule_end_time"`
	ExamScheduleDurationMinutes int       `json:"exam_schedule_duration_minutes"`

	ExamScheduleMaxMarks     int     `json:"exam_schedule_max_marks"`
	ExamScheduleInstructions *string `json:"exam_schedule_instructions,omitempty"`
	ExamScheduleIsPublished  bool    `json:"exam_schedule_is_published"`
}

func FromExamScheduleModel(m *model.ExamScheduleModel) *ExamScheduleResponse {
	return &ExamScheduleResponse{
		ExamScheduleID:              m.ExamScheduleID,
		ExamScheduleTeacherID:       m.ExamScheduleTeacherID,
		ExamScheduleName:            m.ExamScheduleName,
		ExamScheduleSubject:         m.ExamScheduleSubject,
		ExamScheduleGradeLevel:      m.ExamScheduleGradeLevel,
		ExamScheduleType:            string(m.ExamScheduleType),
		ExamScheduleRoom:            m.ExamScheduleRoom,
		ExamScheduleDate:            m.ExamScheduleDate,
		ExamScheduleStartTime:       m.ExamScheduleStartTime.Format("15:04"),
		ExamScheduleEndTime:         m.EndTime().Format("15:04"),
		ExamScheduleDurationMinutes: m.ExamScheduleDurationMinutes,
		ExamScheduleMaxMarks:        m.ExamScheduleMaxMarks,
		ExamScheduleInstructions:    m.ExamScheduleInstructions,
		ExamScheduleIsPublished:     m.ExamScheduleIsPublished,
	}
}

/* =========================================================
   REQUEST: holiday
========================================================= */

type CreateHolidayRequest struct {
	HolidayName string    `json:"holiday_name" validate:"required,min=1,max=100"`
	HolidayDate time.Time `json:"holiday_date" validate:"required"`
	HolidayDesc *string   `json:"holiday_desc,omitempty" validate:"omitempty,max=1000"`
	HolidayType string    `json:"holiday_type" validate:"omitempty,oneof=public school religious"`

	HolidayIsRecurring *bool `json:"holiday_is_recurring,omitempty"`
}

func (r *CreateHolidayRequest) Normalize() {
	r.HolidayName = strings.TrimSpace(r.HolidayName)
	if r.HolidayType == "" {
		r.HolidayType = "public"
	}
}

func (r *CreateHolidayRequest) ToModel() *model.HolidayModel {
	recurring := true
	if r.HolidayIsRecurring != nil {
		recurring = *r.HolidayIsRecurring
	}
	return &model.HolidayModel{
		HolidayName:        r.HolidayName,
		HolidayDate:        r.HolidayDate,
		HolidayDesc:        r.HolidayDesc,
		HolidayType:        r.HolidayType,
		HolidayIsRecurring: recurring,
		HolidayIsActive:    true,
	}
}
