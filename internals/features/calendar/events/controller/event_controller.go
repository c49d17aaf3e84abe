// file: internals/features/calendar/events/controller/event_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sacel_backend/internals/features/calendar/events/dto"
	"sacel_backend/internals/features/calendar/events/service"
	helper "sacel_backend/internals/helpers"
)

/* =========================
   Controller
   ========================= */

type EventController struct {
	DB        *gorm.DB
	Validator *validator.Validate

	events    *service.EventService
	attendees *service.AttendeeService
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{
		DB:        db,
		Validator: validator.New(),
		events:    service.NewEventService(db),
		attendees: service.NewAttendeeService(db),
	}
}

/* =========================
   Small helpers
   ========================= */

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

// queryTimeRFC3339: parse query param waktu, wajib ada.
func queryTimeRFC3339(c *fiber.Ctx, key string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, errors.New("query '" + key + "' wajib diisi (RFC3339)")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.New("query '" + key + "' harus RFC3339")
	}
	return t, nil
}

/* =========================
   Handlers
   ========================= */

// POST /api/a/events
func (ctl *EventController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	ev, conflicts, err := ctl.events.Create(c.Context(), userID, &req)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	log.Printf("[EVENTS] ✅ event dibuat: %s (%s)", ev.EventID, ev.EventTitle)
	data := fiber.Map{"event": dto.FromEventModel(ev)}
	if req.CheckConflicts {
		data["conflicts"] = conflicts
	}
	return helper.JsonCreated(c, "Event berhasil dibuat", data)
}

// GET /api/u/events/:id
func (ctl *EventController) GetByID(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	ev, err := ctl.events.GetByID(c.Context(), id)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromEventModel(ev))
}

// PATCH /api/a/events/:id
func (ctl *EventController) Patch(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	ev, conflicts, err := ctl.events.Update(c.Context(), userID, id, &req)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	data := fiber.Map{"event": dto.FromEventModel(ev)}
	if req.CheckConflicts {
		data["conflicts"] = conflicts
	}
	return helper.JsonUpdated(c, "Event berhasil diperbarui", data)
}

// DELETE /api/a/events/:id
func (ctl *EventController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.DeleteEventRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
		}
	}
	if err := ctl.events.Delete(c.Context(), userID, id, &req); err != nil {
		return helper.JsonServiceError(c, err)
	}
	log.Printf("[EVENTS] 🗑️ event dihapus: %s (scope=%s)", id, req.Scope)
	return helper.JsonDeleted(c, "Event berhasil dihapus", fiber.Map{"event_id": id})
}

// GET /api/u/events/range?from=...&to=...
// Ekspansi occurrence untuk view kalender (harian/mingguan/bulanan).
func (ctl *EventController) ListRange(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	from, err := queryTimeRFC3339(c, "from")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	to, err := queryTimeRFC3339(c, "to")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	occs, err := ctl.events.ListOccurrences(c.Context(), userID, from, to)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonList(c, "OK", occs, nil)
}

/* =========================
   Attendees
   ========================= */

// POST /api/a/events/:id/attendees
func (ctl *EventController) Invite(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.InviteAttendeesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	rows, err := ctl.attendees.Invite(c.Context(), userID, eventID, &req)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	resp := make([]*dto.AttendeeResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromAttendeeModel(&rows[i]))
	}
	log.Printf("[EVENTS] 📨 %d undangan diproses untuk event %s", len(req.AttendeeUserIDs), eventID)
	return helper.JsonCreated(c, "Undangan berhasil dikirim", resp)
}

// GET /api/u/events/:id/attendees
func (ctl *EventController) ListAttendees(c *fiber.Ctx) error {
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	rows, err := ctl.attendees.List(c.Context(), eventID)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	resp := make([]*dto.AttendeeResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromAttendeeModel(&rows[i]))
	}
	return helper.JsonList(c, "OK", resp, nil)
}

// POST /api/u/events/:id/respond
func (ctl *EventController) Respond(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	att, err := ctl.attendees.Respond(c.Context(), userID, eventID, &req)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Respon tersimpan", dto.FromAttendeeModel(att))
}
