package authRoutes

import (
	authControllers "github.com/Sun-Kwak/lavida-cms-sub000/controllers/auth"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	authValidators "github.com/Sun-Kwak/lavida-cms-sub000/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/v1/auth")

	authGroup.Post("/signup", middleware.JWTMiddleware, middleware.RequireRoles("ADMIN", "SUPER-ADMIN"), authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
}
