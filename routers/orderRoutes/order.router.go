package orderRoutes

import (
	orderControllers "github.com/Sun-Kwak/lavida-cms-sub000/controllers/order"
	pointsControllers "github.com/Sun-Kwak/lavida-cms-sub000/controllers/points"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	orderValidators "github.com/Sun-Kwak/lavida-cms-sub000/validators/order"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderRoutes(app *fiber.App) {
	orderGroup := app.Group("/api/v1/orders", middleware.JWTMiddleware)

	orderGroup.Post("/", orderValidators.CreateOrder(), orderControllers.CreateOrder)
	orderGroup.Post("/transfer", orderValidators.Transfer(), orderControllers.TransferEnrollment)

	pointGroup := app.Group("/api/v1/points", middleware.JWTMiddleware)
	pointGroup.Post("/expire", middleware.RequireRoles("ADMIN", "SUPER-ADMIN"), pointsControllers.RunExpiry)
}
