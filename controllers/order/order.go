package orderController

import (
	"errors"

	"github.com/Sun-Kwak/lavida-cms-sub000/database"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	"github.com/Sun-Kwak/lavida-cms-sub000/models"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/enrollment"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/order"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/points"
	orderValidator "github.com/Sun-Kwak/lavida-cms-sub000/validators/order"

	"github.com/gofiber/fiber/v2"
)

// CreateOrder settles a purchase through the order processor
func CreateOrder(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOrder").(*orderValidator.OrderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	req := order.Request{
		OrderID:     reqData.OrderID,
		MemberID:    reqData.MemberID,
		OrderType:   models.PaymentType(reqData.OrderType),
		Description: reqData.Description,
		Payments: order.PaymentSplit{
			Cash:         reqData.Payments.Cash,
			Card:         reqData.Payments.Card,
			Transfer:     reqData.Payments.Transfer,
			Points:       reqData.Payments.Points,
			BonusEnabled: reqData.Payments.BonusEnabled,
		},
	}
	for _, p := range reqData.Products {
		req.Products = append(req.Products, order.ProductLine{
			ProductID:    p.ProductID,
			AppliedPrice: p.AppliedPrice,
			StartDate:    p.StartDate,
		})
	}

	orderID, err := order.ProcessOrder(database.Database.Db, req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrDuplicateOrder):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Order already processed!", fiber.Map{"orderId": orderID})
		case errors.Is(err, order.ErrMemberNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
		case errors.Is(err, order.ErrProductNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
		case errors.Is(err, points.ErrInsufficientBalance):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Insufficient point balance!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process order!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Order processed!", fiber.Map{"orderId": orderID})
}

// TransferEnrollment moves an entitlement between members for a fee
func TransferEnrollment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTransfer").(*struct {
		EnrollmentID  uint    `json:"enrollmentId"`
		ToMemberID    uint    `json:"toMemberId"`
		FeeRatio      float64 `json:"feeRatio"`
		PaymentMethod string  `json:"paymentMethod"`
		PointPayment  int64   `json:"pointPayment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	received, err := order.Transfer(database.Database.Db, order.TransferRequest{
		EnrollmentID:  reqData.EnrollmentID,
		ToMemberID:    reqData.ToMemberID,
		FeeRatio:      reqData.FeeRatio,
		PaymentMethod: reqData.PaymentMethod,
		PointPayment:  reqData.PointPayment,
	})
	if err != nil {
		switch {
		case errors.Is(err, enrollment.ErrEnrollmentNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		case errors.Is(err, order.ErrMemberNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
		case errors.Is(err, enrollment.ErrInvalidState):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Enrollment cannot be transferred in its current state!", nil)
		case errors.Is(err, points.ErrInsufficientBalance):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Insufficient point balance!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to transfer enrollment!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment transferred!", received)
}

// ListPayments returns settlement records for a member
func ListPayments(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	db := database.Database.Db
	query := db.Model(&models.Payment{}).Where("member_id = ? AND is_deleted = false", memberID)

	var total int64
	query.Count(&total)

	var payments []models.Payment
	if err := query.
		Order("paid_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched!", fiber.Map{
		"payments": payments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
