// file: internals/features/calendar/reminders/route/reminder_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reminderController "sacel_backend/internals/features/calendar/reminders/controller"
	reminderService "sacel_backend/internals/features/calendar/reminders/service"
	middlewares "sacel_backend/internals/middlewares"
	authMw "sacel_backend/internals/middlewares/auth"
)

func ReminderUserRoutes(r fiber.Router, db *gorm.DB, dispatcher *reminderService.DispatcherService) {
	ctl := reminderController.NewReminderController(db, dispatcher)

	r.Post("/events/:id/reminders", ctl.Create)
	r.Get("/events/:id/reminders", ctl.ListForEvent)

	rem := r.Group("/reminders")
	rem.Delete("/:id", ctl.Delete)
	rem.Get("/upcoming", ctl.Upcoming)
	rem.Get("/deliveries", ctl.Deliveries)

	admin := rem.Group("", authMw.RequireAdmin())
	admin.Post("/tick", middlewares.DispatcherTickRateLimiter(), ctl.TriggerTick)
}
