package enrollment

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/models"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	// ErrInvalidState is returned when an event is fired from a status the
	// transition table does not allow it from.
	ErrInvalidState = errors.New("invalid enrollment state for this operation")

	// ErrAlreadyHold is returned when a hold is started twice.
	ErrAlreadyHold = errors.New("enrollment is already on hold")

	// ErrInvalidProgramType is returned when hold/extend is attempted on a
	// count-based enrollment.
	ErrInvalidProgramType = errors.New("operation not available for this program type")

	// ErrInvalidExtension is returned for a non-positive extension.
	ErrInvalidExtension = errors.New("extension days must be greater than 0")
)

// Event names one state-machine transition.
type Event string

const (
	EventStartHold      Event = "startHold"
	EventEndHold        Event = "endHold"
	EventExtend         Event = "extend"
	EventCompleteUnpaid Event = "completeUnpaid"
	EventTransferOut    Event = "transferOut"
)

// rule describes which (status, programType) pairs may fire an event.
// Anything not listed is rejected; enrollment status is never mutated
// outside these transitions.
type rule struct {
	from     []models.EnrollmentStatus
	programs []models.ProgramType
}

var transitions = map[Event]rule{
	EventStartHold: {
		from:     []models.EnrollmentStatus{models.EnrollmentStatusActive, models.EnrollmentStatusUnpaid},
		programs: []models.ProgramType{models.ProgramTypeDuration},
	},
	EventEndHold: {
		from:     []models.EnrollmentStatus{models.EnrollmentStatusHold},
		programs: []models.ProgramType{models.ProgramTypeDuration},
	},
	EventExtend: {
		from:     []models.EnrollmentStatus{models.EnrollmentStatusActive, models.EnrollmentStatusUnpaid},
		programs: []models.ProgramType{models.ProgramTypeDuration},
	},
	EventCompleteUnpaid: {
		from:     []models.EnrollmentStatus{models.EnrollmentStatusUnpaid},
		programs: []models.ProgramType{models.ProgramTypeCount, models.ProgramTypeDuration},
	},
	EventTransferOut: {
		from:     []models.EnrollmentStatus{models.EnrollmentStatusActive, models.EnrollmentStatusUnpaid},
		programs: []models.ProgramType{models.ProgramTypeCount, models.ProgramTypeDuration},
	},
}

// guard checks the transition table for (status, event, programType).
func guard(enr *models.CourseEnrollment, event Event) error {
	r, ok := transitions[event]
	if !ok {
		return ErrInvalidState
	}

	programOK := false
	for _, p := range r.programs {
		if enr.ProgramType == p {
			programOK = true
			break
		}
	}
	if !programOK {
		return ErrInvalidProgramType
	}

	for _, s := range r.from {
		if enr.Status == s {
			return nil
		}
	}
	return ErrInvalidState
}

// Find loads one enrollment by id.
func Find(db *gorm.DB, id uint) (*models.CourseEnrollment, error) {
	var enr models.CourseEnrollment
	if err := db.First(&enr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &enr, nil
}

// StartHold suspends a duration-based enrollment. The expiry clock pauses;
// EndHold extends the end date by the elapsed hold duration.
func StartHold(db *gorm.DB, enr *models.CourseEnrollment, reason string) error {
	if enr.IsHold || enr.Status == models.EnrollmentStatusHold {
		return ErrAlreadyHold
	}
	if err := guard(enr, EventStartHold); err != nil {
		return err
	}

	start := time.Now()
	enr.IsHold = true
	enr.HoldStartDate = &start
	enr.HoldReason = reason
	enr.Status = models.EnrollmentStatusHold
	appendNote(enr, fmt.Sprintf("[홀딩 시작] %s", reason))

	return db.Save(enr).Error
}

// EndHold resumes a held enrollment: the elapsed whole days are added to
// TotalHoldDays and to the end date, and the status returns to unpaid when
// there is an outstanding balance, otherwise active.
func EndHold(db *gorm.DB, enr *models.CourseEnrollment) error {
	if !enr.IsHold || enr.Status != models.EnrollmentStatusHold || enr.HoldStartDate == nil {
		return ErrInvalidState
	}

	days := elapsedDays(*enr.HoldStartDate, time.Now())
	enr.TotalHoldDays += days
	if enr.EndDate != nil {
		extended := enr.EndDate.AddDate(0, 0, days)
		enr.EndDate = &extended
	}

	enr.IsHold = false
	enr.HoldStartDate = nil
	enr.HoldReason = ""
	if enr.UnpaidAmount > 0 {
		enr.Status = models.EnrollmentStatusUnpaid
	} else {
		enr.Status = models.EnrollmentStatusActive
	}
	appendNote(enr, fmt.Sprintf("[홀딩 해제] %d일 연장", days))

	return db.Save(enr).Error
}

// Extend pushes the end date of a duration-based enrollment forward.
// Rejected while the enrollment is on hold.
func Extend(db *gorm.DB, enr *models.CourseEnrollment, days int, reason string) error {
	if days <= 0 {
		return ErrInvalidExtension
	}
	if enr.IsHold {
		return ErrInvalidState
	}
	if err := guard(enr, EventExtend); err != nil {
		return err
	}
	if enr.EndDate == nil {
		return ErrInvalidState
	}

	extended := enr.EndDate.AddDate(0, 0, days)
	enr.EndDate = &extended
	appendNote(enr, fmt.Sprintf("[기간 연장] %d일: %s", days, reason))

	return db.Save(enr).Error
}

// CompleteUnpaid settles the outstanding balance of an unpaid enrollment.
// A new Payment is written for the delta (the original settlement record is
// immutable) and the enrollment moves to completed.
func CompleteUnpaid(db *gorm.DB, enr *models.CourseEnrollment, method string) (*models.Payment, error) {
	if err := guard(enr, EventCompleteUnpaid); err != nil {
		return nil, err
	}

	delta := enr.UnpaidAmount
	courseID := enr.ID
	payment := models.Payment{
		OrderID:         uuid.NewString(),
		MemberID:        enr.MemberID,
		TotalAmount:     delta,
		PaidAmount:      delta,
		UnpaidAmount:    0,
		PaymentType:     models.PaymentTypeCourse,
		PaymentMethod:   method,
		RelatedCourseID: &courseID,
		Description:     fmt.Sprintf("미수금 완납: %s", enr.ProductName),
		PaidAt:          time.Now(),
	}
	switch method {
	case "cash":
		payment.CashAmount = delta
	case "card":
		payment.CardAmount = delta
	default:
		payment.TransferAmount = delta
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		enr.PaidAmount = enr.AppliedPrice
		enr.UnpaidAmount = 0
		enr.Status = models.EnrollmentStatusCompleted
		appendNote(enr, fmt.Sprintf("[미수 완납] %d원 (%s)", delta, method))
		return tx.Save(enr).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// TransferOut cancels the donor enrollment as part of a transfer. The
// schedule history stays attached to this record for audit.
func TransferOut(db *gorm.DB, enr *models.CourseEnrollment, toMemberName string, fee int64) error {
	if enr.IsHold {
		return ErrInvalidState
	}
	if err := guard(enr, EventTransferOut); err != nil {
		return err
	}

	enr.Status = models.EnrollmentStatusCancelled
	appendNote(enr, fmt.Sprintf("[양도] %s 회원에게 양도 (수수료 %d원)", toMemberName, fee))

	return db.Save(enr).Error
}

// TransferIn creates the receiving enrollment of a transfer. Sessions
// already consumed by the donor are carried as a seed because the donor's
// schedule events are not re-pointed at the new record.
func TransferIn(db *gorm.DB, donor *models.CourseEnrollment, toMemberID uint, fromMemberName string, carriedSessions int, fee int64) (*models.CourseEnrollment, error) {
	status := models.EnrollmentStatusActive
	if donor.UnpaidAmount > 0 {
		status = models.EnrollmentStatusUnpaid
	}

	received := models.CourseEnrollment{
		MemberID:        toMemberID,
		ProductID:       donor.ProductID,
		ProductName:     donor.ProductName,
		AppliedPrice:    donor.AppliedPrice,
		ProgramType:     donor.ProgramType,
		Status:          status,
		SessionCount:    donor.SessionCount,
		CarriedSessions: carriedSessions,
		StartDate:       time.Now(),
		EndDate:         donor.EndDate,
		PaidAmount:      donor.PaidAmount,
		UnpaidAmount:    donor.UnpaidAmount,
		OrderID:         donor.OrderID,
	}
	appendNote(&received, fmt.Sprintf("[양도] %s 회원으로부터 양수 (수수료 %d원)", fromMemberName, fee))

	if err := db.Create(&received).Error; err != nil {
		return nil, err
	}
	return &received, nil
}

// elapsedDays counts whole calendar days between two times.
func elapsedDays(from, to time.Time) int {
	start := now.New(from).BeginningOfDay()
	end := now.New(to).BeginningOfDay()
	return int(end.Sub(start).Hours() / 24)
}

func appendNote(enr *models.CourseEnrollment, line string) {
	stamped := fmt.Sprintf("%s %s", time.Now().Format("2006-01-02"), line)
	if enr.Notes == "" {
		enr.Notes = stamped
		return
	}
	enr.Notes += "\n" + stamped
}
