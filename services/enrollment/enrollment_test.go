package enrollment

import (
	"fmt"
	"testing"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a per-test in-memory database to avoid cross-test interference
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.CourseEnrollment{},
		&models.Payment{},
	))
	return db
}

func seedDurationEnrollment(t *testing.T, db *gorm.DB, status models.EnrollmentStatus, unpaid int64) *models.CourseEnrollment {
	t.Helper()
	start := time.Now()
	end := start.AddDate(0, 3, 0)
	enr := &models.CourseEnrollment{
		MemberID:     1,
		ProductID:    1,
		ProductName:  "헬스 3개월",
		AppliedPrice: 300000,
		ProgramType:  models.ProgramTypeDuration,
		Status:       status,
		StartDate:    start,
		EndDate:      &end,
		PaidAmount:   300000 - unpaid,
		UnpaidAmount: unpaid,
	}
	require.NoError(t, db.Create(enr).Error)
	return enr
}

func seedCountEnrollment(t *testing.T, db *gorm.DB) *models.CourseEnrollment {
	t.Helper()
	enr := &models.CourseEnrollment{
		MemberID:     1,
		ProductID:    2,
		ProductName:  "PT 10회",
		AppliedPrice: 500000,
		ProgramType:  models.ProgramTypeCount,
		Status:       models.EnrollmentStatusActive,
		SessionCount: 10,
		StartDate:    time.Now(),
		PaidAmount:   500000,
	}
	require.NoError(t, db.Create(enr).Error)
	return enr
}

func TestStartHold(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusActive, 0)

	require.NoError(t, StartHold(db, enr, "해외 출장"))
	require.Equal(t, models.EnrollmentStatusHold, enr.Status)
	require.True(t, enr.IsHold)
	require.NotNil(t, enr.HoldStartDate)
	require.Equal(t, "해외 출장", enr.HoldReason)
}

func TestStartHoldTwiceFails(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusActive, 0)

	require.NoError(t, StartHold(db, enr, "first"))
	require.ErrorIs(t, StartHold(db, enr, "second"), ErrAlreadyHold)
}

func TestStartHoldRejectsCountPrograms(t *testing.T) {
	db := setupTestDB(t)
	enr := seedCountEnrollment(t, db)

	require.ErrorIs(t, StartHold(db, enr, "휴가"), ErrInvalidProgramType)
	require.Equal(t, models.EnrollmentStatusActive, enr.Status)
}

func TestEndHoldExtendsEndDateByElapsedDays(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusActive, 0)
	originalEnd := *enr.EndDate

	require.NoError(t, StartHold(db, enr, "부상"))

	// Backdate the hold start by 10 days
	backdated := time.Now().AddDate(0, 0, -10)
	enr.HoldStartDate = &backdated
	require.NoError(t, db.Save(enr).Error)

	require.NoError(t, EndHold(db, enr))

	require.False(t, enr.IsHold)
	require.Nil(t, enr.HoldStartDate)
	require.Equal(t, models.EnrollmentStatusActive, enr.Status)
	require.Equal(t, 10, enr.TotalHoldDays)
	require.Equal(t, originalEnd.AddDate(0, 0, 10).Unix(), enr.EndDate.Unix())
}

func TestEndHoldPreservesUnpaidStatus(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusUnpaid, 100000)

	require.NoError(t, StartHold(db, enr, "사정"))
	require.NoError(t, EndHold(db, enr))
	require.Equal(t, models.EnrollmentStatusUnpaid, enr.Status)
}

func TestExtendWhileOnHoldFails(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusActive, 0)

	require.NoError(t, StartHold(db, enr, "홀딩"))
	require.ErrorIs(t, Extend(db, enr, 7, "서비스"), ErrInvalidState)
}

func TestExtendRejectsNonPositiveDays(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusActive, 0)

	require.ErrorIs(t, Extend(db, enr, 0, "x"), ErrInvalidExtension)
	require.ErrorIs(t, Extend(db, enr, -5, "x"), ErrInvalidExtension)
}

func TestExtendPushesEndDate(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusActive, 0)
	originalEnd := *enr.EndDate

	require.NoError(t, Extend(db, enr, 14, "이벤트 연장"))
	require.Equal(t, originalEnd.AddDate(0, 0, 14).Unix(), enr.EndDate.Unix())
	require.Contains(t, enr.Notes, "14일")
}

func TestExtendRejectsCountPrograms(t *testing.T) {
	db := setupTestDB(t)
	enr := seedCountEnrollment(t, db)

	require.ErrorIs(t, Extend(db, enr, 7, "x"), ErrInvalidProgramType)
}

func TestCompleteUnpaidSettlesBalance(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusUnpaid, 120000)

	payment, err := CompleteUnpaid(db, enr, "card")
	require.NoError(t, err)

	require.Equal(t, models.EnrollmentStatusCompleted, enr.Status)
	require.Equal(t, enr.AppliedPrice, enr.PaidAmount)
	require.Equal(t, int64(0), enr.UnpaidAmount)

	// A fresh Payment is written for the delta, the original record is
	// never touched
	require.Equal(t, int64(120000), payment.TotalAmount)
	require.Equal(t, int64(120000), payment.CardAmount)
	require.Equal(t, models.PaymentTypeCourse, payment.PaymentType)
	require.Equal(t, enr.ID, *payment.RelatedCourseID)
}

func TestCompleteUnpaidOnlyFromUnpaid(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusActive, 0)

	_, err := CompleteUnpaid(db, enr, "cash")
	require.ErrorIs(t, err, ErrInvalidState)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestTransferOutRejectedWhileOnHold(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusActive, 0)

	require.NoError(t, StartHold(db, enr, "홀딩"))
	require.ErrorIs(t, TransferOut(db, enr, "김철수", 30000), ErrInvalidState)
}

func TestTransferOutCancelsWithAuditNote(t *testing.T) {
	db := setupTestDB(t)
	enr := seedDurationEnrollment(t, db, models.EnrollmentStatusActive, 0)

	require.NoError(t, TransferOut(db, enr, "김철수", 30000))
	require.Equal(t, models.EnrollmentStatusCancelled, enr.Status)
	require.Contains(t, enr.Notes, "[양도]")
	require.Contains(t, enr.Notes, "김철수")
}

func TestTransferInSeedsCarriedSessions(t *testing.T) {
	db := setupTestDB(t)
	donor := seedCountEnrollment(t, db)

	received, err := TransferIn(db, donor, 2, "박영희", 3, 50000)
	require.NoError(t, err)

	require.Equal(t, uint(2), received.MemberID)
	require.Equal(t, models.EnrollmentStatusActive, received.Status)
	require.Equal(t, donor.SessionCount, received.SessionCount)
	require.Equal(t, 3, received.CarriedSessions)
	require.Contains(t, received.Notes, "박영희")
}
