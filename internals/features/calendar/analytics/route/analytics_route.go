// file: internals/features/calendar/analytics/route/analytics_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsController "sacel_backend/internals/features/calendar/analytics/controller"
)

func AnalyticsUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := analyticsController.NewAnalyticsController(db)
	r.Get("/analytics/summary", ctl.Summary)
}
