// file: internals/middlewares/setup.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMw "sacel_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar dalam urutan yang benar:
// recovery paling luar supaya panic di middleware lain ikut tertangkap.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMw.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
