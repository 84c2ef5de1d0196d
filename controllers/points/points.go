package pointsController

import (
	"errors"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/database"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	"github.com/Sun-Kwak/lavida-cms-sub000/models"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/points"

	"github.com/gofiber/fiber/v2"
)

// GetBalance returns a member's current point balance
func GetBalance(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = false", memberID).First(&models.Member{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	balance, err := points.Balance(db, uint(memberID), time.Now())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute balance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Point balance fetched!", fiber.Map{
		"memberId": memberID,
		"balance":  balance,
	})
}

// GetHistory returns a member's point ledger entries
func GetHistory(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	txnType := c.Query("type")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	entries, total, err := points.History(database.Database.Db, uint(memberID), txnType, page, limit)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch point history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Point history fetched!", fiber.Map{
		"transactions": entries,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdjustPoints credits or debits a member's ledger (Admin only). Debits go
// through the FIFO walk, so they fail cleanly when the balance is short.
func AdjustPoints(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	reqData, ok := c.Locals("validatedAdjust").(*struct {
		Amount int64  `json:"amount"`
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = false", memberID).First(&models.Member{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	if reqData.Amount > 0 {
		if _, err := points.Adjust(db, uint(memberID), reqData.Amount, reqData.Reason, points.EarnOptions{}); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to adjust points!", nil)
		}
	} else {
		if err := points.ConsumeAdjustment(db, uint(memberID), -reqData.Amount, reqData.Reason); err != nil {
			if errors.Is(err, points.ErrInsufficientBalance) {
				return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Insufficient point balance!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to adjust points!", nil)
		}
	}

	balance, err := points.Balance(db, uint(memberID), time.Now())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute balance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Points adjusted!", fiber.Map{
		"memberId": memberID,
		"balance":  balance,
	})
}

// RunExpiry triggers the point expiry sweep manually (Admin only). The
// sweep is idempotent; the daily scheduler runs the same code.
func RunExpiry(c *fiber.Ctx) error {
	written, err := points.ExpireAll(database.Database.Db, time.Now())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to run expiry sweep!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Expiry sweep finished!", fiber.Map{
		"expiredEntries": written,
	})
}
