package scheduleController

import (
	"errors"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/database"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	"github.com/Sun-Kwak/lavida-cms-sub000/models"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/enrollment"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/sessions"

	"github.com/gofiber/fiber/v2"
)

// CreateEvent records a calendar reservation. For class events linked to a
// count-based enrollment the remaining-session budget is checked first.
func CreateEvent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEvent").(*struct {
		EnrollmentID *uint     `json:"enrollmentId"`
		MemberID     uint      `json:"memberId"`
		Type         string    `json:"type"`
		Title        string    `json:"title"`
		StartTime    time.Time `json:"startTime"`
		EndTime      time.Time `json:"endTime"`
		Memo         string    `json:"memo"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = false", reqData.MemberID).First(&models.Member{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	eventType := models.ScheduleEventType(reqData.Type)

	if reqData.EnrollmentID != nil && eventType == models.ScheduleTypeClass {
		enr, err := enrollment.Find(db, *reqData.EnrollmentID)
		if err != nil {
			if errors.Is(err, enrollment.ErrEnrollmentNotFound) {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
		}

		if enr.ProgramType == models.ProgramTypeCount {
			remaining, err := sessions.RemainingSessions(db, enr)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check session budget!", nil)
			}
			if remaining <= 0 {
				return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "No sessions remaining on this enrollment!", nil)
			}
		}
	}

	event := models.ScheduleEvent{
		EnrollmentID: reqData.EnrollmentID,
		MemberID:     reqData.MemberID,
		Type:         eventType,
		Status:       models.ScheduleStatusActive,
		Title:        reqData.Title,
		StartTime:    reqData.StartTime,
		EndTime:      reqData.EndTime,
		Memo:         reqData.Memo,
	}

	if err := db.Create(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Event created!", event)
}

// ListEvents returns events filtered by member or enrollment
func ListEvents(c *fiber.Ctx) error {
	memberID := c.QueryInt("memberId", 0)
	enrollmentID := c.QueryInt("enrollmentId", 0)

	db := database.Database.Db
	query := db.Model(&models.ScheduleEvent{})

	if memberID > 0 {
		query = query.Where("member_id = ?", memberID)
	}
	if enrollmentID > 0 {
		query = query.Where("enrollment_id = ?", enrollmentID)
	}

	var events []models.ScheduleEvent
	if err := query.Order("start_time DESC").Limit(200).Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched!", events)
}

// UpdateEventStatus records completion, cancellation or a no-show on an
// event. The event itself is never deleted so session accounting can
// always be replayed.
func UpdateEventStatus(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event id!", nil)
	}

	reqData, ok := c.Locals("validatedEventStatus").(*struct {
		Status string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var event models.ScheduleEvent
	if err := db.First(&event, eventID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	event.Status = models.ScheduleEventStatus(reqData.Status)
	if err := db.Save(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event status updated!", event)
}
