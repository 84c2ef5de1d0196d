package order

import (
	"fmt"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/config"
	"github.com/Sun-Kwak/lavida-cms-sub000/models"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/enrollment"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/points"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/sessions"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransferRequest moves an active entitlement to another member for a fee.
type TransferRequest struct {
	EnrollmentID  uint
	ToMemberID    uint
	FeeRatio      float64 // 0 uses the configured percentage
	PaymentMethod string  // instrument for the cash part of the fee
	PointPayment  int64   // fee portion paid from the receiver's points
}

// Transfer cancels the donor enrollment and creates a fresh one for the
// receiving member, charging the receiver a percentage fee that may be
// split between points and a cash-like instrument. Validation happens
// before any write; the writes run in one transaction.
func Transfer(db *gorm.DB, req TransferRequest) (*models.CourseEnrollment, error) {
	donor, err := enrollment.Find(db, req.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if donor.IsHold || donor.Status == models.EnrollmentStatusHold {
		return nil, enrollment.ErrInvalidState
	}

	var fromMember, toMember models.Member
	if err := db.Where("id = ? AND is_deleted = false", donor.MemberID).First(&fromMember).Error; err != nil {
		return nil, ErrMemberNotFound
	}
	if err := db.Where("id = ? AND is_deleted = false", req.ToMemberID).First(&toMember).Error; err != nil {
		return nil, ErrMemberNotFound
	}

	ratio := req.FeeRatio
	if ratio <= 0 {
		ratio = 0.10
		if config.AppConfig != nil && config.AppConfig.TransferFeePercent > 0 {
			ratio = float64(config.AppConfig.TransferFeePercent) / 100
		}
	}
	fee := int64(float64(donor.AppliedPrice) * ratio)

	pointPayment := req.PointPayment
	if pointPayment > 0 {
		balance, err := points.Balance(db, req.ToMemberID, time.Now())
		if err != nil {
			return nil, err
		}
		if pointPayment > balance {
			return nil, points.ErrInsufficientBalance
		}
	}
	cashFee := fee - pointPayment
	if cashFee < 0 {
		cashFee = 0
	}

	// Sessions the donor already consumed are seeded onto the receiving
	// enrollment; the donor's schedule events stay where they are.
	completed, err := sessions.CompletedSessions(db, donor.ID)
	if err != nil {
		return nil, err
	}
	carried := donor.CarriedSessions + completed

	var received *models.CourseEnrollment
	err = db.Transaction(func(tx *gorm.DB) error {
		if fee > 0 {
			donorID := donor.ID
			payment := models.Payment{
				OrderID:         uuid.NewString(),
				MemberID:        toMember.ID,
				TotalAmount:     fee,
				PaidAmount:      fee,
				UnpaidAmount:    0,
				PointAmount:     pointPayment,
				PaymentType:     models.PaymentTypeOther,
				PaymentMethod:   req.PaymentMethod,
				RelatedCourseID: &donorID,
				Description:     fmt.Sprintf("양도 수수료: %s → %s", fromMember.Name, toMember.Name),
				PaidAt:          time.Now(),
			}
			switch req.PaymentMethod {
			case "card":
				payment.CardAmount = cashFee
			case "transfer":
				payment.TransferAmount = cashFee
			default:
				payment.CashAmount = cashFee
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}

			if pointPayment > 0 {
				desc := fmt.Sprintf("양도 수수료 포인트 결제: %s", donor.ProductName)
				if err := points.ConsumeFIFO(tx, toMember.ID, pointPayment, payment.OrderID, desc); err != nil {
					return err
				}
			}
		}

		if err := enrollment.TransferOut(tx, donor, toMember.Name, fee); err != nil {
			return err
		}

		enr, err := enrollment.TransferIn(tx, donor, toMember.ID, fromMember.Name, carried, fee)
		if err != nil {
			return err
		}
		received = enr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}
