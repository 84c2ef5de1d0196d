package productValidator

import (
	"strings"

	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateProduct validates catalog item creation
func CreateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			ProgramType string `json:"programType"`
			Price       int64  `json:"price"`
			Sessions    int    `json:"sessions"`
			Months      int    `json:"months"`
			BranchID    uint   `json:"branchId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if reqData.Price <= 0 {
			errors["price"] = "Price must be greater than 0!"
		}
		switch reqData.ProgramType {
		case "count":
			if reqData.Sessions <= 0 {
				errors["sessions"] = "Count programs need a session count!"
			}
		case "duration":
			if reqData.Months <= 0 {
				errors["months"] = "Duration programs need a month count!"
			}
		default:
			errors["programType"] = "Program type must be count or duration!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProduct", reqData)
		return c.Next()
	}
}
