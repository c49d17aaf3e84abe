// file: internals/features/calendar/schedules/route/schedule_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleController "sacel_backend/internals/features/calendar/schedules/controller"
	authMw "sacel_backend/internals/middlewares/auth"
)

// ScheduleUserRoutes: read-only untuk semua user login.
func ScheduleUserRoutes(r fiber.Router, db *gorm.DB) {
	schCtl := scheduleController.NewScheduleController(db)
	examCtl := scheduleController.NewExamScheduleController(db)
	holCtl := scheduleController.NewHolidayController(db)

	r.Get("/schedules", schCtl.List)
	r.Get("/schedules/:id", schCtl.GetByID)
	r.Get("/exam-schedules", examCtl.List)
	r.Get("/holidays", holCtl.List)
}

// ScheduleTeacherRoutes: mutasi oleh guru; holiday khusus admin.
func ScheduleTeacherRoutes(r fiber.Router, db *gorm.DB) {
	schCtl := scheduleController.NewScheduleController(db)
	examCtl := scheduleController.NewExamScheduleController(db)
	holCtl := scheduleController.NewHolidayController(db)

	r.Post("/schedules", schCtl.Create)
	r.Delete("/schedules/:id", schCtl.Delete)

	r.Post("/exam-schedules", examCtl.Create)
	r.Post("/exam-schedules/:id/publish", examCtl.Publish)
	r.Delete("/exam-schedules/:id", examCtl.Delete)

	admin := r.Group("", authMw.RequireAdmin())
	admin.Post("/holidays", holCtl.Create)
	admin.Delete("/holidays/:id", holCtl.Delete)
}
