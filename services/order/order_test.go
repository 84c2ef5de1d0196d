package order

import (
	"fmt"
	"testing"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/models"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/points"

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
		&models.Member{},
		&models.Product{},
		&models.Payment{},
		&models.CourseEnrollment{},
		&models.PointTransaction{},
		&models.ScheduleEvent{},
	))
	return db
}

func seedMember(t *testing.T, db *gorm.DB, name, phone string) *models.Member {
	t.Helper()
	member := &models.Member{
		Name:     name,
		Phone:    phone,
		JoinDate: time.Now(),
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func seedProduct(t *testing.T, db *gorm.DB, name string, programType models.ProgramType, price int64, sessions, months int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		ProgramType: programType,
		Price:       price,
		Sessions:    sessions,
		Months:      months,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedPoints(t *testing.T, db *gorm.DB, memberID uint, amount int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.PointTransaction{
		MemberID:   memberID,
		Amount:     amount,
		Type:       models.PointTypeEarned,
		Source:     "test",
		EarnedDate: time.Now().AddDate(0, -1, 0),
	}).Error)
}

func TestProcessOrderFullPayment(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")
	product := seedProduct(t, db, "헬스 3개월", models.ProgramTypeDuration, 300000, 0, 3)

	orderID, err := ProcessOrder(db, Request{
		MemberID: member.ID,
		Products: []ProductLine{{ProductID: product.ID}},
		Payments: PaymentSplit{Card: 300000},
	})
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	var payment models.Payment
	require.NoError(t, db.Where("order_id = ?", orderID).First(&payment).Error)
	require.Equal(t, int64(300000), payment.TotalAmount)
	require.Equal(t, int64(300000), payment.PaidAmount)
	require.Equal(t, int64(0), payment.UnpaidAmount)
	require.Equal(t, int64(300000), payment.CardAmount)

	var enr models.CourseEnrollment
	require.NoError(t, db.Where("order_id = ?", orderID).First(&enr).Error)
	require.Equal(t, models.EnrollmentStatusActive, enr.Status)
	require.Equal(t, payment.TotalAmount, enr.PaidAmount+enr.UnpaidAmount)
	require.NotNil(t, enr.EndDate)
}

func TestProcessOrderShortfallLeavesUnpaid(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")
	product := seedProduct(t, db, "PT 10회", models.ProgramTypeCount, 500000, 10, 0)

	orderID, err := ProcessOrder(db, Request{
		MemberID: member.ID,
		Products: []ProductLine{{ProductID: product.ID}},
		Payments: PaymentSplit{Cash: 300000},
	})
	require.NoError(t, err)

	var enr models.CourseEnrollment
	require.NoError(t, db.Where("order_id = ?", orderID).First(&enr).Error)
	require.Equal(t, models.EnrollmentStatusUnpaid, enr.Status)
	require.Equal(t, int64(300000), enr.PaidAmount)
	require.Equal(t, int64(200000), enr.UnpaidAmount)
	require.Equal(t, enr.AppliedPrice, enr.PaidAmount+enr.UnpaidAmount)
	require.Equal(t, 10, enr.SessionCount)
}

func TestProcessOrderShortfallLandsOnLaterLines(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")
	first := seedProduct(t, db, "헬스 1개월", models.ProgramTypeDuration, 100000, 0, 1)
	second := seedProduct(t, db, "PT 10회", models.ProgramTypeCount, 500000, 10, 0)

	orderID, err := ProcessOrder(db, Request{
		MemberID: member.ID,
		Products: []ProductLine{
			{ProductID: first.ID},
			{ProductID: second.ID},
		},
		Payments: PaymentSplit{Card: 400000},
	})
	require.NoError(t, err)

	var enrollments []models.CourseEnrollment
	require.NoError(t, db.Where("order_id = ?", orderID).Order("id asc").Find(&enrollments).Error)
	require.Len(t, enrollments, 2)

	require.Equal(t, models.EnrollmentStatusActive, enrollments[0].Status)
	require.Equal(t, int64(0), enrollments[0].UnpaidAmount)
	require.Equal(t, models.EnrollmentStatusUnpaid, enrollments[1].Status)
	require.Equal(t, int64(200000), enrollments[1].UnpaidAmount)
}

func TestProcessOrderAppliedPriceOverridesCatalog(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")
	product := seedProduct(t, db, "헬스 3개월", models.ProgramTypeDuration, 300000, 0, 3)

	discounted := int64(250000)
	orderID, err := ProcessOrder(db, Request{
		MemberID: member.ID,
		Products: []ProductLine{{ProductID: product.ID, AppliedPrice: &discounted}},
		Payments: PaymentSplit{Cash: 250000},
	})
	require.NoError(t, err)

	var enr models.CourseEnrollment
	require.NoError(t, db.Where("order_id = ?", orderID).First(&enr).Error)
	require.Equal(t, discounted, enr.AppliedPrice)
	require.Equal(t, models.EnrollmentStatusActive, enr.Status)
}

func TestProcessOrderOverpaymentEarnsSurplusAndBonus(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")
	product := seedProduct(t, db, "PT 20회", models.ProgramTypeCount, 2000000, 20, 0)

	// 900,000 over the price, bonus enabled: no full bonus unit is reached
	// so only the surplus itself is credited
	_, err := ProcessOrder(db, Request{
		MemberID: member.ID,
		Products: []ProductLine{{ProductID: product.ID}},
		Payments: PaymentSplit{Transfer: 2900000, BonusEnabled: true},
	})
	require.NoError(t, err)

	balance, err := points.Balance(db, member.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(900000), balance)
}

func TestProcessOrderBonusPerFullUnit(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")
	product := seedProduct(t, db, "PT 20회", models.ProgramTypeCount, 2000000, 20, 0)

	// 2,100,000 surplus crosses two full bonus units: 2 x 100,000 on top
	_, err := ProcessOrder(db, Request{
		MemberID: member.ID,
		Products: []ProductLine{{ProductID: product.ID}},
		Payments: PaymentSplit{Transfer: 4100000, BonusEnabled: true},
	})
	require.NoError(t, err)

	balance, err := points.Balance(db, member.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(2300000), balance)
}

func TestProcessOrderBonusDisabled(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")
	product := seedProduct(t, db, "PT 20회", models.ProgramTypeCount, 2000000, 20, 0)

	_, err := ProcessOrder(db, Request{
		MemberID: member.ID,
		Products: []ProductLine{{ProductID: product.ID}},
		Payments: PaymentSplit{Transfer: 4100000},
	})
	require.NoError(t, err)

	balance, err := points.Balance(db, member.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(2100000), balance)
}

func TestProcessOrderSpendsPointsFIFO(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")
	product := seedProduct(t, db, "헬스 1개월", models.ProgramTypeDuration, 100000, 0, 1)
	seedPoints(t, db, member.ID, 80000)

	orderID, err := ProcessOrder(db, Request{
		MemberID: member.ID,
		Products: []ProductLine{{ProductID: product.ID}},
		Payments: PaymentSplit{Cash: 20000, Points: 80000},
	})
	require.NoError(t, err)

	balance, err := points.Balance(db, member.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(0), balance)

	var payment models.Payment
	require.NoError(t, db.Where("order_id = ?", orderID).First(&payment).Error)
	require.Equal(t, int64(80000), payment.PointAmount)
	require.Equal(t, "cash+points", payment.PaymentMethod)
}

func TestProcessOrderInsufficientPointsWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")
	product := seedProduct(t, db, "헬스 1개월", models.ProgramTypeDuration, 100000, 0, 1)
	seedPoints(t, db, member.ID, 50000)

	_, err := ProcessOrder(db, Request{
		MemberID: member.ID,
		Products: []ProductLine{{ProductID: product.ID}},
		Payments: PaymentSplit{Cash: 40000, Points: 60000},
	})
	require.ErrorIs(t, err, points.ErrInsufficientBalance)

	var payments, enrollments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	require.NoError(t, db.Model(&models.CourseEnrollment{}).Count(&enrollments).Error)
	require.Equal(t, int64(0), payments)
	require.Equal(t, int64(0), enrollments)
}

func TestProcessOrderDuplicateOrderID(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")
	product := seedProduct(t, db, "헬스 1개월", models.ProgramTypeDuration, 100000, 0, 1)

	req := Request{
		OrderID:  "ord-123",
		MemberID: member.ID,
		Products: []ProductLine{{ProductID: product.ID}},
		Payments: PaymentSplit{Cash: 100000},
	}
	_, err := ProcessOrder(db, req)
	require.NoError(t, err)

	orderID, err := ProcessOrder(db, req)
	require.ErrorIs(t, err, ErrDuplicateOrder)
	require.Equal(t, "ord-123", orderID)

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	require.Equal(t, int64(1), payments)
}

func TestProcessOrderUnknownMember(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "헬스 1개월", models.ProgramTypeDuration, 100000, 0, 1)

	_, err := ProcessOrder(db, Request{
		MemberID: 999,
		Products: []ProductLine{{ProductID: product.ID}},
		Payments: PaymentSplit{Cash: 100000},
	})
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestProcessOrderUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	member := seedMember(t, db, "홍길동", "010-1111-2222")

	_, err := ProcessOrder(db, Request{
		MemberID: member.ID,
		Products: []ProductLine{{ProductID: 999}},
		Payments: PaymentSplit{Cash: 100000},
	})
	require.ErrorIs(t, err, ErrProductNotFound)
}
