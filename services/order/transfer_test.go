package order

import (
	"testing"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/models"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/enrollment"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/points"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTransferEnrollment(t *testing.T, db *gorm.DB, memberID uint, price int64, sessions int) *models.CourseEnrollment {
	t.Helper()
	enr := &models.CourseEnrollment{
		MemberID:     memberID,
		ProductID:    1,
		ProductName:  "PT 10회",
		AppliedPrice: price,
		ProgramType:  models.ProgramTypeCount,
		Status:       models.EnrollmentStatusActive,
		SessionCount: sessions,
		StartDate:    time.Now(),
		PaidAmount:   price,
	}
	require.NoError(t, db.Create(enr).Error)
	return enr
}

func TestTransferChargesTenPercentFee(t *testing.T) {
	db := setupTestDB(t)
	donor := seedMember(t, db, "홍길동", "010-1111-2222")
	receiver := seedMember(t, db, "김철수", "010-3333-4444")
	enr := seedTransferEnrollment(t, db, donor.ID, 500000, 10)

	received, err := Transfer(db, TransferRequest{
		EnrollmentID:  enr.ID,
		ToMemberID:    receiver.ID,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.Equal(t, receiver.ID, received.MemberID)

	var fee models.Payment
	require.NoError(t, db.Where("member_id = ?", receiver.ID).First(&fee).Error)
	require.Equal(t, int64(50000), fee.TotalAmount)
	require.Equal(t, int64(50000), fee.CashAmount)
	require.Equal(t, models.PaymentTypeOther, fee.PaymentType)

	var reloaded models.CourseEnrollment
	require.NoError(t, db.First(&reloaded, enr.ID).Error)
	require.Equal(t, models.EnrollmentStatusCancelled, reloaded.Status)
}

func TestTransferSplitsFeeAcrossPointsAndCash(t *testing.T) {
	db := setupTestDB(t)
	donor := seedMember(t, db, "홍길동", "010-1111-2222")
	receiver := seedMember(t, db, "김철수", "010-3333-4444")
	enr := seedTransferEnrollment(t, db, donor.ID, 500000, 10)
	seedPoints(t, db, receiver.ID, 50000)

	_, err := Transfer(db, TransferRequest{
		EnrollmentID:  enr.ID,
		ToMemberID:    receiver.ID,
		PaymentMethod: "card",
		PointPayment:  20000,
	})
	require.NoError(t, err)

	var fee models.Payment
	require.NoError(t, db.Where("member_id = ?", receiver.ID).First(&fee).Error)
	require.Equal(t, int64(50000), fee.TotalAmount)
	require.Equal(t, int64(20000), fee.PointAmount)
	require.Equal(t, int64(30000), fee.CardAmount)

	balance, err := points.Balance(db, receiver.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(30000), balance)
}

func TestTransferInsufficientPointsWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	donor := seedMember(t, db, "홍길동", "010-1111-2222")
	receiver := seedMember(t, db, "김철수", "010-3333-4444")
	enr := seedTransferEnrollment(t, db, donor.ID, 500000, 10)
	seedPoints(t, db, receiver.ID, 50000)

	// Asking to pay more points than the receiver holds fails even though
	// the fee itself is smaller than the balance
	_, err := Transfer(db, TransferRequest{
		EnrollmentID:  enr.ID,
		ToMemberID:    receiver.ID,
		PaymentMethod: "cash",
		PointPayment:  60000,
	})
	require.ErrorIs(t, err, points.ErrInsufficientBalance)

	var reloaded models.CourseEnrollment
	require.NoError(t, db.First(&reloaded, enr.ID).Error)
	require.Equal(t, models.EnrollmentStatusActive, reloaded.Status)

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	require.Equal(t, int64(0), payments)
}

func TestTransferCarriesConsumedSessions(t *testing.T) {
	db := setupTestDB(t)
	donor := seedMember(t, db, "홍길동", "010-1111-2222")
	receiver := seedMember(t, db, "김철수", "010-3333-4444")
	enr := seedTransferEnrollment(t, db, donor.ID, 500000, 10)

	// Donor already used 3 of the 10 sessions
	for i := 0; i < 3; i++ {
		id := enr.ID
		require.NoError(t, db.Create(&models.ScheduleEvent{
			EnrollmentID: &id,
			MemberID:     donor.ID,
			Type:         models.ScheduleTypeClass,
			Status:       models.ScheduleStatusCompleted,
			StartTime:    time.Now(),
			EndTime:      time.Now().Add(time.Hour),
		}).Error)
	}

	received, err := Transfer(db, TransferRequest{
		EnrollmentID:  enr.ID,
		ToMemberID:    receiver.ID,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	require.Equal(t, 10, received.SessionCount)
	require.Equal(t, 3, received.CarriedSessions)
}

func TestTransferRejectedWhileOnHold(t *testing.T) {
	db := setupTestDB(t)
	donor := seedMember(t, db, "홍길동", "010-1111-2222")
	receiver := seedMember(t, db, "김철수", "010-3333-4444")
	enr := seedTransferEnrollment(t, db, donor.ID, 500000, 10)
	enr.IsHold = true
	enr.Status = models.EnrollmentStatusHold
	require.NoError(t, db.Save(enr).Error)

	_, err := Transfer(db, TransferRequest{
		EnrollmentID:  enr.ID,
		ToMemberID:    receiver.ID,
		PaymentMethod: "cash",
	})
	require.ErrorIs(t, err, enrollment.ErrInvalidState)
}

func TestTransferUnknownEnrollment(t *testing.T) {
	db := setupTestDB(t)
	receiver := seedMember(t, db, "김철수", "010-3333-4444")

	_, err := Transfer(db, TransferRequest{
		EnrollmentID:  999,
		ToMemberID:    receiver.ID,
		PaymentMethod: "cash",
	})
	require.ErrorIs(t, err, enrollment.ErrEnrollmentNotFound)
}
