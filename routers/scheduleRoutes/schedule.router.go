package scheduleRoutes

import (
	scheduleControllers "github.com/Sun-Kwak/lavida-cms-sub000/controllers/schedule"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	scheduleValidators "github.com/Sun-Kwak/lavida-cms-sub000/validators/schedule"

	"github.com/gofiber/fiber/v2"
)

func SetupScheduleRoutes(app *fiber.App) {
	scheduleGroup := app.Group("/api/v1/schedule", middleware.JWTMiddleware)

	scheduleGroup.Post("/", scheduleValidators.CreateEvent(), scheduleControllers.CreateEvent)
	scheduleGroup.Get("/", scheduleControllers.ListEvents)
	scheduleGroup.Patch("/:id/status", scheduleValidators.UpdateStatus(), scheduleControllers.UpdateEventStatus)
}
