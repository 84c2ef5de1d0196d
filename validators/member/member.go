package memberValidator

import (
	"regexp"
	"strings"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate phone number format
func isValidPhone(phone string) bool {
	re := regexp.MustCompile(`^[0-9\-]{9,13}$`)
	return re.MatchString(phone)
}

// CreateMember validates member registration request
func CreateMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name      string     `json:"name"`
			Phone     string     `json:"phone"`
			Email     string     `json:"email"`
			Gender    string     `json:"gender"`
			BirthDate *time.Time `json:"birthDate"`
			Address   string     `json:"address"`
			BranchID  uint       `json:"branchId"`
			Memo      string     `json:"memo"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}
		if reqData.Phone == "" || !isValidPhone(reqData.Phone) {
			errors["phone"] = "Invalid phone number!"
		}
		if reqData.Gender != "" && reqData.Gender != "male" && reqData.Gender != "female" {
			errors["gender"] = "Gender must be male or female!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMember", reqData)
		return c.Next()
	}
}

// UpdateMember validates member profile edits
func UpdateMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name      string     `json:"name"`
			Email     string     `json:"email"`
			Gender    string     `json:"gender"`
			BirthDate *time.Time `json:"birthDate"`
			Address   string     `json:"address"`
			Memo      string     `json:"memo"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != "" && len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}
		if reqData.Gender != "" && reqData.Gender != "male" && reqData.Gender != "female" {
			errors["gender"] = "Gender must be male or female!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMemberUpdate", reqData)
		return c.Next()
	}
}
