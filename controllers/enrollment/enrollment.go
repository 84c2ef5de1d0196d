package enrollmentController

import (
	"errors"

	"github.com/Sun-Kwak/lavida-cms-sub000/database"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	"github.com/Sun-Kwak/lavida-cms-sub000/models"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/enrollment"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/sessions"

	"github.com/gofiber/fiber/v2"
)

// transitionError maps state machine errors to HTTP responses
func transitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, enrollment.ErrEnrollmentNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	case errors.Is(err, enrollment.ErrAlreadyHold):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Enrollment is already on hold!", nil)
	case errors.Is(err, enrollment.ErrInvalidProgramType):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "This operation is not available for the program type!", nil)
	case errors.Is(err, enrollment.ErrInvalidExtension):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Extension days must be greater than 0!", nil)
	case errors.Is(err, enrollment.ErrInvalidState):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Operation not allowed in the current enrollment state!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}
}

// ListByMember returns all enrollments of a member
func ListByMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	db := database.Database.Db

	var enrollments []models.CourseEnrollment
	if err := db.Where("member_id = ?", memberID).Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched!", enrollments)
}

// GetEnrollment returns one enrollment with derived session counts
func GetEnrollment(c *fiber.Ctx) error {
	enrollmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	db := database.Database.Db

	enr, err := enrollment.Find(db, uint(enrollmentID))
	if err != nil {
		return transitionError(c, err)
	}

	completed, err := sessions.CompletedSessions(db, enr.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute session counts!", nil)
	}
	remaining, err := sessions.RemainingSessions(db, enr)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute session counts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched!", fiber.Map{
		"enrollment":        enr,
		"completedSessions": completed,
		"remainingSessions": remaining,
	})
}

// StartHold suspends a duration-based enrollment
func StartHold(c *fiber.Ctx) error {
	enrollmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	reqData, ok := c.Locals("validatedHold").(*struct {
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	enr, err := enrollment.Find(db, uint(enrollmentID))
	if err != nil {
		return transitionError(c, err)
	}

	if err := enrollment.StartHold(db, enr, reqData.Reason); err != nil {
		return transitionError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment put on hold!", enr)
}

// EndHold resumes a held enrollment and extends its end date
func EndHold(c *fiber.Ctx) error {
	enrollmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	db := database.Database.Db

	enr, err := enrollment.Find(db, uint(enrollmentID))
	if err != nil {
		return transitionError(c, err)
	}

	if err := enrollment.EndHold(db, enr); err != nil {
		return transitionError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Hold ended!", enr)
}

// Extend pushes the end date of a duration-based enrollment forward
func Extend(c *fiber.Ctx) error {
	enrollmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	reqData, ok := c.Locals("validatedExtend").(*struct {
		Days   int    `json:"days"`
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	enr, err := enrollment.Find(db, uint(enrollmentID))
	if err != nil {
		return transitionError(c, err)
	}

	if err := enrollment.Extend(db, enr, reqData.Days, reqData.Reason); err != nil {
		return transitionError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment extended!", enr)
}

// CompletePayment settles the outstanding balance of an unpaid enrollment
func CompletePayment(c *fiber.Ctx) error {
	enrollmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	reqData, ok := c.Locals("validatedCompletePayment").(*struct {
		PaymentMethod string `json:"paymentMethod"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	enr, err := enrollment.Find(db, uint(enrollmentID))
	if err != nil {
		return transitionError(c, err)
	}

	payment, err := enrollment.CompleteUnpaid(db, enr, reqData.PaymentMethod)
	if err != nil {
		return transitionError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Outstanding balance settled!", fiber.Map{
		"enrollment": enr,
		"payment":    payment,
	})
}
