// file: internals/features/calendar/events/route/event_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventController "sacel_backend/internals/features/calendar/events/controller"
)

// EventUserRoutes: route yang bisa dipakai semua user login.
func EventUserRoutes(r fiber.Router, db *gorm.DB) {
	evCtl := eventController.NewEventController(db)
	calCtl := eventController.NewCalendarController(db)

	ev := r.Group("/events")
	ev.Post("/", evCtl.Create)
	ev.Get("/range", evCtl.ListRange)
	ev.Get("/:id", evCtl.GetByID)
	ev.Patch("/:id", evCtl.Patch)
	ev.Delete("/:id", evCtl.Delete)

	ev.Post("/:id/attendees", evCtl.Invite)
	ev.Get("/:id/attendees", evCtl.ListAttendees)
	ev.Post("/:id/respond", evCtl.Respond)

	cal := r.Group("/calendars")
	cal.Post("/", calCtl.Create)
	cal.Get("/", calCtl.ListMine)
	cal.Patch("/:id", calCtl.Patch)
	cal.Delete("/:id", calCtl.Delete)
	cal.Post("/:id/shares", calCtl.Share)
	cal.Delete("/:id/shares/:user_id", calCtl.Unshare)
}
