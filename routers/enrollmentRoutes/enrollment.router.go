package enrollmentRoutes

import (
	enrollmentControllers "github.com/Sun-Kwak/lavida-cms-sub000/controllers/enrollment"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	enrollmentValidators "github.com/Sun-Kwak/lavida-cms-sub000/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(app *fiber.App) {
	enrollmentGroup := app.Group("/api/v1/enrollments", middleware.JWTMiddleware)

	enrollmentGroup.Get("/:id", enrollmentControllers.GetEnrollment)
	enrollmentGroup.Post("/:id/hold", enrollmentValidators.StartHold(), enrollmentControllers.StartHold)
	enrollmentGroup.Post("/:id/unhold", enrollmentControllers.EndHold)
	enrollmentGroup.Post("/:id/extend", enrollmentValidators.Extend(), enrollmentControllers.Extend)
	enrollmentGroup.Post("/:id/complete-payment", enrollmentValidators.CompletePayment(), enrollmentControllers.CompletePayment)
}
