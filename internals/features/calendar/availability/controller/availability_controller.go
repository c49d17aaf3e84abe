// file: internals/features/calendar/availability/controller/availability_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sacel_backend/internals/features/calendar/availability/dto"
	"sacel_backend/internals/features/calendar/availability/model"
	"sacel_backend/internals/features/calendar/availability/service"
	helper "sacel_backend/internals/helpers"
)

type AvailabilityController struct {
	DB        *gorm.DB
	Validator *validator.Validate

	conflicts *service.ConflictService
}

func NewAvailabilityController(db *gorm.DB) *AvailabilityController {
	return &AvailabilityController{
		DB:        db,
		Validator: validator.New(),
		conflicts: service.NewConflictService(db),
	}
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

// POST /api/u/availability/slots
func (ctl *AvailabilityController) CreateSlot(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateAvailabilitySlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := req.ToModel(userID)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Availability slot berhasil dibuat", m)
}

// GET /api/u/availability/slots
func (ctl *AvailabilityController) ListSlots(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var rows []model.AvailabilitySlotModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("availability_slot_user_id = ?", userID).
		Order("availability_slot_day_of_week ASC, availability_slot_start_time ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonList(c, "OK", rows, nil)
}

// DELETE /api/u/availability/slots/:id
func (ctl *AvailabilityController) DeleteSlot(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("availability_slot_id = ? AND availability_slot_user_id = ?", id, userID).
		Delete(&model.AvailabilitySlotModel{})
	if res.Error != nil {
		return helper.JsonServiceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "slot tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Slot berhasil dihapus", fiber.Map{"availability_slot_id": id})
}

// GET /api/u/availability/check?start=&end=&user_id=&exclude_event_id=
// user_id default = diri sendiri. Hasil bersifat advisory.
func (ctl *AvailabilityController) Check(c *fiber.Ctx) error {
	selfID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	targetID := selfID
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		targetID, err = uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
		}
	}

	start, err := time.Parse(time.RFC3339, strings.TrimSpace(c.Query("start")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query 'start' harus RFC3339")
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(c.Query("end")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query 'end' harus RFC3339")
	}

	var excludeID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("exclude_event_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "exclude_event_id tidak valid")
		}
		excludeID = &id
	}

	result, err := ctl.conflicts.CheckAvailability(c.Context(), targetID, start, end, excludeID)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", result)
}
