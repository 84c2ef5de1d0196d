package enrollmentValidator

import (
	"strings"

	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// StartHold validates a hold request
func StartHold() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reason string `json:"reason"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Reason) == "" {
			errors["reason"] = "Hold reason is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedHold", reqData)
		return c.Next()
	}
}

// Extend validates an extension request
func Extend() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Days   int    `json:"days"`
			Reason string `json:"reason"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Days <= 0 {
			errors["days"] = "Extension days must be greater than 0!"
		}
		if strings.TrimSpace(reqData.Reason) == "" {
			errors["reason"] = "Extension reason is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExtend", reqData)
		return c.Next()
	}
}

// CompletePayment validates an unpaid balance settlement request
func CompletePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PaymentMethod string `json:"paymentMethod"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		switch reqData.PaymentMethod {
		case "cash", "card", "transfer":
		default:
			errors["paymentMethod"] = "Payment method must be cash, card or transfer!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCompletePayment", reqData)
		return c.Next()
	}
}
