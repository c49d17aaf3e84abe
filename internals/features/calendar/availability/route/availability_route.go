// file: internals/features/calendar/availability/route/availability_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	availabilityController "sacel_backend/internals/features/calendar/availability/controller"
)

func AvailabilityUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := availabilityController.NewAvailabilityController(db)

	av := r.Group("/availability")
	av.Post("/slots", ctl.CreateSlot)
	av.Get("/slots", ctl.ListSlots)
	av.Delete("/slots/:id", ctl.DeleteSlot)
	av.Get("/check", ctl.Check)
}
