// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsRoute "sacel_backend/internals/features/calendar/analytics/route"
	availabilityRoute "sacel_backend/internals/features/calendar/availability/route"
	eventRoute "sacel_backend/internals/features/calendar/events/route"
	reminderRoute "sacel_backend/internals/features/calendar/reminders/route"
	reminderService "sacel_backend/internals/features/calendar/reminders/service"
	scheduleRoute "sacel_backend/internals/features/calendar/schedules/route"
	authMw "sacel_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, dispatcher *reminderService.DispatcherService) {
	startTime = time.Now()

	// ===================== GROUPS =====================

	// PRIVATE (USER) → semua user login
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		authMw.AuthJWT(authMw.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ADMIN/TEACHER → mutasi jadwal sekolah
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMw.AuthJWT(authMw.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Event & Calendar routes...")
	eventRoute.EventUserRoutes(private, db)

	log.Println("[INFO] Mounting Schedule routes...")
	scheduleRoute.ScheduleUserRoutes(private, db)
	scheduleRoute.ScheduleTeacherRoutes(admin, db)

	log.Println("[INFO] Mounting Availability routes...")
	availabilityRoute.AvailabilityUserRoutes(private, db)

	log.Println("[INFO] Mounting Reminder routes...")
	reminderRoute.ReminderUserRoutes(private, db, dispatcher)

	log.Println("[INFO] Mounting Analytics routes...")
	analyticsRoute.AnalyticsUserRoutes(private, db)
}
