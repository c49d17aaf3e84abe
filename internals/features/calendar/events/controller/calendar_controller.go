// file: internals/features/calendar/events/controller/calendar_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sacel_backend/internals/features/calendar/events/dto"
	"sacel_backend/internals/features/calendar/events/model"
	helper "sacel_backend/internals/helpers"
)

type CalendarController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCalendarController(db *gorm.DB) *CalendarController {
	return &CalendarController{DB: db, Validator: validator.New()}
}

// POST /api/u/calendars
func (ctl *CalendarController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateCalendarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	m := req.ToModel(userID)
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if m.CalendarIsPrimary {
			// satu primary per user
			if err := tx.Model(&model.CalendarModel{}).
				Where("calendar_owner_id = ?", userID).
				Update("calendar_is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Calendar berhasil dibuat", dto.FromCalendarModel(m))
}

// GET /api/u/calendars — milik sendiri + yang di-share ke saya
func (ctl *CalendarController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var own []model.CalendarModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("calendar_owner_id = ?", userID).
		Order("calendar_created_at ASC").
		Find(&own).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	var shared []model.CalendarModel
	if err := ctl.DB.WithContext(c.Context()).
		Joins("JOIN calendar_shares ON calendar_share_calendar_id = calendar_id").
		Where("calendar_share_user_id = ?", userID).
		Find(&shared).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	resp := make([]*dto.CalendarResponse, 0, len(own)+len(shared))
	for i := range own {
		resp = append(resp, dto.FromCalendarModel(&own[i]))
	}
	for i := range shared {
		resp = append(resp, dto.FromCalendarModel(&shared[i]))
	}
	return helper.JsonList(c, "OK", resp, nil)
}

// PATCH /api/u/calendars/:id
func (ctl *CalendarController) Patch(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var cal model.CalendarModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&cal, "calendar_id = ? AND calendar_owner_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "calendar tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	var req dto.UpdateCalendarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}

	patch := map[string]any{}
	if v, ok := req.CalendarName.Get(); ok {
		if v == nil || strings.TrimSpace(*v) == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "calendar_name tidak boleh kosong")
		}
		patch["calendar_name"] = strings.TrimSpace(*v)
	}
	if v, ok := req.CalendarDesc.Get(); ok {
		patch["calendar_desc"] = v
	}
	if v, ok := req.CalendarColor.Get(); ok && v != nil {
		patch["calendar_color"] = *v
	}
	if v, ok := req.CalendarIsVisible.Get(); ok && v != nil {
		patch["calendar_is_visible"] = *v
	}
	if v, ok := req.CalendarTimezone.Get(); ok && v != nil {
		patch["calendar_timezone"] = *v
	}
	if len(patch) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", dto.FromCalendarModel(&cal))
	}

	if err := ctl.DB.WithContext(c.Context()).Model(&cal).Updates(patch).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Calendar berhasil diperbarui", dto.FromCalendarModel(&cal))
}

// DELETE /api/u/calendars/:id — event di dalamnya dilepas (calendar_id NULL),
// bukan ikut terhapus.
func (ctl *CalendarController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("calendar_id = ? AND calendar_owner_id = ?", id, userID).
			Delete(&model.CalendarModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&model.EventModel{}).
			Where("event_calendar_id = ?", id).
			Update("event_calendar_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("calendar_share_calendar_id = ?", id).
			Delete(&model.CalendarShareModel{}).Error
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Calendar berhasil dihapus", fiber.Map{"calendar_id": id})
}

// POST /api/u/calendars/:id/shares — hanya owner; share ulang = update permission
func (ctl *CalendarController) Share(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.ShareCalendarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}
	if req.CalendarShareUserID == userID {
		return helper.JsonError(c, fiber.StatusBadRequest, "tidak bisa share ke diri sendiri")
	}

	var cal model.CalendarModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&cal, "calendar_id = ? AND calendar_owner_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "calendar tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	share := model.CalendarShareModel{
		CalendarShareCalendarID: id,
		CalendarShareUserID:     req.CalendarShareUserID,
		CalendarSharePermission: model.CalendarPermission(req.CalendarSharePermission),
	}
	if err := ctl.DB.WithContext(c.Context()).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "calendar_share_calendar_id"},
			{Name: "calendar_share_user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"calendar_share_permission"}),
	}).Create(&share).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Calendar berhasil di-share", dto.FromCalendarShareModel(&share))
}

// DELETE /api/u/calendars/:id/shares/:user_id
func (ctl *CalendarController) Unshare(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	targetID, err := paramUUID(c, "user_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var cal model.CalendarModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&cal, "calendar_id = ? AND calendar_owner_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "calendar tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("calendar_share_calendar_id = ? AND calendar_share_user_id = ?", id, targetID).
		Delete(&model.CalendarShareModel{}).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Share dicabut", fiber.Map{"calendar_id": id, "user_id": targetID})
}
