// file: internals/features/calendar/analytics/controller/analytics_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sacel_backend/internals/constants"
	"sacel_backend/internals/features/calendar/analytics/service"
	helper "sacel_backend/internals/helpers"
)

type AnalyticsController struct {
	DB *gorm.DB

	analytics *service.AnalyticsService
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db, analytics: service.NewAnalyticsService(db)}
}

// GET /api/u/analytics/summary?timeframe=week&ref=2024-03-04&scope=personal
// ref opsional, default hari ini. scope=system hanya untuk admin.
func (ctl *AnalyticsController) Summary(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	timeframe := strings.TrimSpace(c.Query("timeframe", constants.TimeframeWeek))
	scope := strings.TrimSpace(c.Query("scope", service.ScopePersonal))
	if scope == service.ScopeSystem && !helper.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "scope system hanya untuk admin")
	}
	ref := time.Now().UTC()
	if raw := strings.TrimSpace(c.Query("ref")); raw != "" {
		ref, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ref harus YYYY-MM-DD")
		}
	}

	sum, err := ctl.analytics.Summarize(c.Context(), userID, scope, timeframe, ref)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", sum)
}
