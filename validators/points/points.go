package pointsValidator

import (
	"strings"

	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// Adjust validates an admin point adjustment request
func Adjust() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount int64  `json:"amount"`
			Reason string `json:"reason"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount == 0 {
			errors["amount"] = "Amount cannot be 0!"
		}
		if strings.TrimSpace(reqData.Reason) == "" {
			errors["reason"] = "Reason is required for adjustments!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdjust", reqData)
		return c.Next()
	}
}
