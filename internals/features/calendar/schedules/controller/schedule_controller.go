// file: internals/features/calendar/schedules/controller/schedule_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sacel_backend/internals/features/calendar/schedules/dto"
	"sacel_backend/internals/features/calendar/schedules/model"
	helper "sacel_backend/internals/helpers"
)

type ScheduleController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db, Validator: validator.New()}
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return uuid.Nil, errors.New("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}
	return id, nil
}

func validationMap(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			f := strings.ToLower(fe.Field())
			out[f] = append(out[f], "gagal validasi rule '"+fe.Tag()+"'")
		}
		return out
	}
	out["_"] = []string{err.Error()}
	return out
}

// POST /api/a/schedules
func (ctl *ScheduleController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateScheduleRequest
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
	log.Printf("[SCHEDULES] ✅ schedule dibuat: %s (%s hari=%d)", m.ScheduleID, m.ScheduleSubject, m.ScheduleDayOfWeek)
	return helper.JsonCreated(c, "Schedule berhasil dibuat", dto.FromScheduleModel(m))
}

// GET /api/u/schedules?day_of_week=&grade_level=&teacher_id=
func (ctl *ScheduleController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).
		Model(&model.ScheduleModel{}).
		Where("schedule_is_active = TRUE")

	if raw := strings.TrimSpace(c.Query("day_of_week")); raw != "" {
		q = q.Where("schedule_day_of_week = ?", c.QueryInt("day_of_week"))
	}
	if raw := strings.TrimSpace(c.Query("grade_level")); raw != "" {
		q = q.Where("schedule_grade_level = ?", c.QueryInt("grade_level"))
	}
	if raw := strings.TrimSpace(c.Query("teacher_id")); raw != "" {
		tid, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "teacher_id tidak valid")
		}
		q = q.Where("schedule_teacher_id = ?", tid)
	}

	var rows []model.ScheduleModel
	if err := q.Order("schedule_day_of_week ASC, schedule_start_time ASC").Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	resp := make([]*dto.ScheduleResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromScheduleModel(&rows[i]))
	}
	return helper.JsonList(c, "OK", resp, nil)
}

// GET /api/u/schedules/:id
func (ctl *ScheduleController) GetByID(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	var m model.ScheduleModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "schedule_id = ?", id).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromScheduleModel(&m))
}

// DELETE /api/a/schedules/:id — soft delete; hanya guru pemilik
func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("schedule_id = ? AND schedule_teacher_id = ?", id, teacherID).
		Delete(&model.ScheduleModel{})
	if res.Error != nil {
		return helper.JsonServiceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "schedule tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Schedule berhasil dihapus", fiber.Map{"schedule_id": id})
}
