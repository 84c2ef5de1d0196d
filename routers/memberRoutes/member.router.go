package memberRoutes

import (
	enrollmentControllers "github.com/Sun-Kwak/lavida-cms-sub000/controllers/enrollment"
	memberControllers "github.com/Sun-Kwak/lavida-cms-sub000/controllers/member"
	orderControllers "github.com/Sun-Kwak/lavida-cms-sub000/controllers/order"
	pointsControllers "github.com/Sun-Kwak/lavida-cms-sub000/controllers/points"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	memberValidators "github.com/Sun-Kwak/lavida-cms-sub000/validators/member"
	pointsValidators "github.com/Sun-Kwak/lavida-cms-sub000/validators/points"

	"github.com/gofiber/fiber/v2"
)

func SetupMemberRoutes(app *fiber.App) {
	memberGroup := app.Group("/api/v1/members", middleware.JWTMiddleware)

	memberGroup.Post("/", memberValidators.CreateMember(), memberControllers.CreateMember)
	memberGroup.Get("/", memberControllers.ListMembers)
	memberGroup.Get("/:id", memberControllers.GetMember)
	memberGroup.Put("/:id", memberValidators.UpdateMember(), memberControllers.UpdateMember)
	memberGroup.Patch("/:id/active", memberControllers.SetMemberActive)

	memberGroup.Get("/:id/enrollments", enrollmentControllers.ListByMember)
	memberGroup.Get("/:id/payments", orderControllers.ListPayments)

	memberGroup.Get("/:id/points/balance", pointsControllers.GetBalance)
	memberGroup.Get("/:id/points", pointsControllers.GetHistory)
	memberGroup.Post("/:id/points/adjust", middleware.RequireRoles("ADMIN", "SUPER-ADMIN"), pointsValidators.Adjust(), pointsControllers.AdjustPoints)
}
