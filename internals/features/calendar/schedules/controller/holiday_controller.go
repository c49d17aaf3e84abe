// file: internals/features/calendar/schedules/controller/holiday_controller.go
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

type HolidayController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewHolidayController(db *gorm.DB) *HolidayController {
	return &HolidayController{DB: db, Validator: validator.New()}
}

// POST /api/a/holidays — admin only (di-guard dari route)
func (ctl *HolidayController) Create(c *fiber.Ctx) error {
	var req dto.CreateHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	log.Printf("[SCHEDULES] 🎉 holiday dibuat: %s (%s)", m.HolidayID, m.HolidayName)
	return helper.JsonCreated(c, "Holiday berhasil dibuat", m)
}

// GET /api/u/holidays?year=
func (ctl *HolidayController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).
		Model(&model.HolidayModel{}).
		Where("holiday_is_active = TRUE")

	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year := c.QueryInt("year")
		start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		// recurring tahunan ikut tampil di tahun berapa pun
		q = q.Where("holiday_is_recurring = TRUE OR (holiday_date >= ? AND holiday_date < ?)", start, end)
	}

	var rows []model.HolidayModel
	if err := q.Order("holiday_date ASC").Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonList(c, "OK", rows, nil)
}

// DELETE /api/a/holidays/:id
func (ctl *HolidayController) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	res := ctl.DB.WithContext(c.Context()).
		Where("holiday_id = ?", id).
		Delete(&model.HolidayModel{})
	if res.Error != nil {
		return helper.JsonServiceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "holiday tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Holiday berhasil dihapus", fiber.Map{"holiday_id": id})
}
