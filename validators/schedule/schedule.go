package scheduleValidator

import (
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateEvent validates a reservation request
func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			EnrollmentID *uint     `json:"enrollmentId"`
			MemberID     uint      `json:"memberId"`
			Type         string    `json:"type"`
			Title        string    `json:"title"`
			StartTime    time.Time `json:"startTime"`
			EndTime      time.Time `json:"endTime"`
			Memo         string    `json:"memo"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.MemberID == 0 {
			errors["memberId"] = "Member ID is required!"
		}
		switch reqData.Type {
		case "class", "consultation", "other":
		default:
			errors["type"] = "Type must be class, consultation or other!"
		}
		if reqData.StartTime.IsZero() || reqData.EndTime.IsZero() {
			errors["time"] = "Start and end time are required!"
		} else if !reqData.EndTime.After(reqData.StartTime) {
			errors["time"] = "End time must be after start time!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEvent", reqData)
		return c.Next()
	}
}

// UpdateStatus validates an event status change
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		switch reqData.Status {
		case "active", "completed", "cancelled", "noshow":
		default:
			errors["status"] = "Status must be active, completed, cancelled or noshow!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEventStatus", reqData)
		return c.Next()
	}
}
