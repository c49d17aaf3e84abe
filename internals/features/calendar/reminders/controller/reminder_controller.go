// file: internals/features/calendar/reminders/controller/reminder_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	eventDto "sacel_backend/internals/features/calendar/events/dto"
	evmodel "sacel_backend/internals/features/calendar/events/model"
	"sacel_backend/internals/features/calendar/reminders/service"
	helper "sacel_backend/internals/helpers"
)

type ReminderController struct {
	DB        *gorm.DB
	Validator *validator.Validate

	dispatcher *service.DispatcherService
}

func NewReminderController(db *gorm.DB, dispatcher *service.DispatcherService) *ReminderController {
	return &ReminderController{
		DB:         db,
		Validator:  validator.New(),
		dispatcher: dispatcher,
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

// eventOwnedBy: event milik user; dipakai guard mutasi reminder.
func (ctl *ReminderController) eventOwnedBy(c *fiber.Ctx, eventID, userID uuid.UUID) (*evmodel.EventModel, error) {
	var ev evmodel.EventModel
	err := ctl.DB.WithContext(c.Context()).
		First(&ev, "event_id = ? AND event_creator_id = ?", eventID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewServiceError(helper.ErrKindNotFound, "event_id", "event tidak ditemukan")
		}
		return nil, err
	}
	return &ev, nil
}

// POST /api/u/events/:id/reminders
func (ctl *ReminderController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if _, err := ctl.eventOwnedBy(c, eventID, userID); err != nil {
		return helper.JsonServiceError(c, err)
	}

	var req eventDto.CreateReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if req.EventReminderChannel == "" {
		req.EventReminderChannel = string(evmodel.ReminderChannelNotification)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := evmodel.EventReminderModel{
		EventReminderEventID:       eventID,
		EventReminderUserID:        req.EventReminderUserID,
		EventReminderChannel:       evmodel.ReminderChannel(req.EventReminderChannel),
		EventReminderMinutesBefore: req.EventReminderMinutesBefore,
		EventReminderIsActive:      true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Reminder berhasil dibuat", m)
}

// GET /api/u/events/:id/reminders
func (ctl *ReminderController) ListForEvent(c *fiber.Ctx) error {
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	var rows []evmodel.EventReminderModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("event_reminder_event_id = ? AND event_reminder_is_active = TRUE", eventID).
		Order("event_reminder_minutes_before ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonList(c, "OK", rows, nil)
}

// DELETE /api/u/reminders/:id — nonaktifkan (soft delete)
func (ctl *ReminderController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var rem evmodel.EventReminderModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&rem, "event_reminder_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "reminder tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}
	if _, err := ctl.eventOwnedBy(c, rem.EventReminderEventID, userID); err != nil {
		return helper.JsonServiceError(c, err)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Delete(&evmodel.EventReminderModel{}, "event_reminder_id = ?", id).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Reminder berhasil dihapus", fiber.Map{"event_reminder_id": id})
}

// GET /api/u/reminders/upcoming?hours=24
func (ctl *ReminderController) Upcoming(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	hours := c.QueryInt("hours", 24)
	if hours < 1 {
		hours = 24
	}

	rows, err := ctl.dispatcher.Upcoming(c.Context(), userID, time.Duration(hours)*time.Hour)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonList(c, "OK", rows, nil)
}

// GET /api/u/reminders/deliveries — riwayat kiriman untuk saya
func (ctl *ReminderController) Deliveries(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var total int64
	q := ctl.DB.WithContext(c.Context()).
		Model(&evmodel.ReminderDeliveryModel{}).
		Where("reminder_delivery_user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	var rows []evmodel.ReminderDeliveryModel
	if err := q.Order("reminder_delivery_sent_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "OK", rows, &p)
}

// POST /api/a/reminders/tick — trigger manual (debug/ops), admin only
func (ctl *ReminderController) TriggerTick(c *fiber.Ctx) error {
	n, err := ctl.dispatcher.Tick(c.Context())
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Tick selesai", fiber.Map{"delivered": n})
}
