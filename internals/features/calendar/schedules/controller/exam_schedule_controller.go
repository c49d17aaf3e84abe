// file: internals/features/calendar/schedules/controller/exam_schedule_controller.go
package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sacel_backend/internals/features/calendar/schedules/dto"
	"sacel_backend/internals/features/calendar/schedules/model"
	helper "sacel_backend/internals/helpers"
)

type ExamScheduleController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewExamScheduleController(db *gorm.DB) *ExamScheduleController {
	return &ExamScheduleController{DB: db, Validator: validator.New()}
}

// POST /api/a/exam-schedules
func (ctl *ExamScheduleController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateExamScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	m, err := req.ToModel(teacherID)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	log.Printf("[SCHEDULES] 📝 exam schedule dibuat: %s (%s)", m.ExamScheduleID, m.ExamScheduleSubject)
	return helper.JsonCreated(c, "Exam schedule berhasil dibuat", dto.FromExamScheduleModel(m))
}

// GET /api/u/exam-schedules?from=&to=&grade_level=
func (ctl *ExamScheduleController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).Model(&model.ExamScheduleModel{})

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from harus YYYY-MM-DD")
		}
		q = q.Where("exam_schedule_date >= ?", t)
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "to harus YYYY-MM-DD")
		}
		q = q.Where("exam_schedule_date <= ?", t)
	}
	if raw := strings.TrimSpace(c.Query("grade_level")); raw != "" {
		q = q.Where("exam_schedule_grade_level = ?", c.QueryInt("grade_level"))
	}

	var rows []model.ExamScheduleModel
	if err := q.Order("exam_schedule_date ASC, exam_schedule_start_time ASC").Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	resp := make([]*dto.ExamScheduleResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromExamScheduleModel(&rows[i]))
	}
	return helper.JsonList(c, "OK", resp, nil)
}

// POST /api/a/exam-schedules/:id/publish
func (ctl *ExamScheduleController) Publish(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.ExamScheduleModel{}).
		Where("exam_schedule_id = ? AND exam_schedule_teacher_id = ?", id, teacherID).
		Update("exam_schedule_is_published", true)
	if res.Error != nil {
		return helper.JsonServiceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "exam schedule tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Exam schedule dipublikasikan", fiber.Map{"exam_schedule_id": id})
}

// DELETE /api/a/exam-schedules/:id
func (ctl *ExamScheduleController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("exam_schedule_id = ? AND exam_schedule_teacher_id = ?", id, teacherID).
		Delete(&model.ExamScheduleModel{})
	if res.Error != nil {
		return helper.JsonServiceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "exam schedule tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Exam schedule berhasil dihapus", fiber.Map{"exam_schedule_id": id})
}
