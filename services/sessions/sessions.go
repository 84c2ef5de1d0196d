package sessions

import (
	"github.com/Sun-Kwak/lavida-cms-sub000/models"

	"gorm.io/gorm"
)

// CompletedSessions derives how many sessions an enrollment has consumed by
// replaying its schedule events: class reservations that are active or
// completed count, cancelled and no-show ones do not. The count is never
// stored on the enrollment, so it cannot drift when a reservation is
// cancelled or marked no-show after the fact.
func CompletedSessions(db *gorm.DB, enrollmentID uint) (int, error) {
	var count int64
	err := db.Model(&models.ScheduleEvent{}).
		Where("enrollment_id = ? AND type = ?", enrollmentID, models.ScheduleTypeClass).
		Where("status IN ?", []models.ScheduleEventStatus{
			models.ScheduleStatusActive,
			models.ScheduleStatusCompleted,
		}).
		Count(&count).Error
	return int(count), err
}

// RemainingSessions returns how many sessions are left on a count-based
// enrollment, including the carried seed from a transfer. Duration-based
// enrollments have no session budget and report 0.
func RemainingSessions(db *gorm.DB, enrollment *models.CourseEnrollment) (int, error) {
	if enrollment.ProgramType != models.ProgramTypeCount {
		return 0, nil
	}

	completed, err := CompletedSessions(db, enrollment.ID)
	if err != nil {
		return 0, err
	}

	remaining := enrollment.SessionCount - enrollment.CarriedSessions - completed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
