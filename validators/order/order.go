package orderValidator

import (
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// OrderRequest is the order shape accepted at the API boundary.
type OrderRequest struct {
	OrderID  string `json:"orderId"`
	MemberID uint   `json:"memberId"`
	Products []struct {
		ProductID    uint       `json:"productId"`
		AppliedPrice *int64     `json:"appliedPrice"`
		StartDate    *time.Time `json:"startDate"`
	} `json:"products"`
	Payments struct {
		Cash         int64 `json:"cash"`
		Card         int64 `json:"card"`
		Transfer     int64 `json:"transfer"`
		Points       int64 `json:"points"`
		BonusEnabled bool  `json:"bonusEnabled"`
	} `json:"payments"`
	OrderType   string `json:"orderType"`
	Description string `json:"description"`
}

// CreateOrder validates an order request
func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(OrderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.MemberID == 0 {
			errors["memberId"] = "Member ID is required!"
		}
		if len(reqData.Products) == 0 {
			errors["products"] = "At least one product is required!"
		}
		for _, p := range reqData.Products {
			if p.ProductID == 0 {
				errors["products"] = "Every product needs an id!"
				break
			}
			if p.AppliedPrice != nil && *p.AppliedPrice < 0 {
				errors["products"] = "Applied price cannot be negative!"
				break
			}
		}
		if reqData.Payments.Cash < 0 || reqData.Payments.Card < 0 ||
			reqData.Payments.Transfer < 0 || reqData.Payments.Points < 0 {
			errors["payments"] = "Payment amounts cannot be negative!"
		}
		if reqData.OrderType != "" && reqData.OrderType != "course" &&
			reqData.OrderType != "asset" && reqData.OrderType != "other" {
			errors["orderType"] = "Order type must be course, asset or other!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOrder", reqData)
		return c.Next()
	}
}

// Transfer validates an enrollment transfer request
func Transfer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			EnrollmentID  uint    `json:"enrollmentId"`
			ToMemberID    uint    `json:"toMemberId"`
			FeeRatio      float64 `json:"feeRatio"`
			PaymentMethod string  `json:"paymentMethod"`
			PointPayment  int64   `json:"pointPayment"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.EnrollmentID == 0 {
			errors["enrollmentId"] = "Enrollment ID is required!"
		}
		if reqData.ToMemberID == 0 {
			errors["toMemberId"] = "Receiving member ID is required!"
		}
		if reqData.FeeRatio < 0 || reqData.FeeRatio > 1 {
			errors["feeRatio"] = "Fee ratio must be between 0 and 1!"
		}
		if reqData.PointPayment < 0 {
			errors["pointPayment"] = "Point payment cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTransfer", reqData)
		return c.Next()
	}
}
