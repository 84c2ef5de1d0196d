package productRoutes

import (
	productControllers "github.com/Sun-Kwak/lavida-cms-sub000/controllers/product"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	productValidators "github.com/Sun-Kwak/lavida-cms-sub000/validators/product"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(app *fiber.App) {
	productGroup := app.Group("/api/v1/products", middleware.JWTMiddleware)

	productGroup.Get("/", productControllers.ListProducts)
	productGroup.Get("/:id", productControllers.GetProduct)

	adminOnly := middleware.RequireRoles("ADMIN", "SUPER-ADMIN")
	productGroup.Post("/", adminOnly, productValidators.CreateProduct(), productControllers.CreateProduct)
	productGroup.Patch("/:id/price", adminOnly, productControllers.UpdateProductPrice)
	productGroup.Patch("/:id/deactivate", adminOnly, productControllers.DeactivateProduct)
}
