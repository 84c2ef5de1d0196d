package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/config"
	"github.com/Sun-Kwak/lavida-cms-sub000/models"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/points"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateOrder is returned when the caller-supplied order id was
	// already settled. The original writes stand; nothing new is written.
	ErrDuplicateOrder = errors.New("order already processed")
)

// PaymentSplit is the allocation of one order across instruments.
type PaymentSplit struct {
	Cash         int64
	Card         int64
	Transfer     int64
	Points       int64
	BonusEnabled bool
}

// ProductLine selects one product for an order. AppliedPrice overrides the
// catalog price when set (discounts); StartDate defaults to today.
type ProductLine struct {
	ProductID    uint
	AppliedPrice *int64
	StartDate    *time.Time
}

// Request is one purchase to settle.
type Request struct {
	// OrderID is the caller-supplied idempotency key. Generated when empty.
	OrderID     string
	MemberID    uint
	Products    []ProductLine
	Payments    PaymentSplit
	OrderType   models.PaymentType
	Description string
}

// ProcessOrder settles a purchase: one Payment record, one CourseEnrollment
// per product, point consumption for the point part, and earned points for
// any surplus. All validation happens before the first write and every
// write happens in one transaction, so a failed order leaves no trace.
func ProcessOrder(db *gorm.DB, req Request) (string, error) {
	orderID := req.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	var existing models.Payment
	if err := db.Where("order_id = ?", orderID).First(&existing).Error; err == nil {
		return orderID, ErrDuplicateOrder
	}

	var member models.Member
	if err := db.Where("id = ? AND is_deleted = false", req.MemberID).First(&member).Error; err != nil {
		return "", ErrMemberNotFound
	}

	type line struct {
		product models.Product
		applied int64
		start   time.Time
	}
	lines := make([]line, 0, len(req.Products))
	var total int64
	for _, pl := range req.Products {
		var product models.Product
		if err := db.Where("id = ? AND is_deleted = false", pl.ProductID).First(&product).Error; err != nil {
			return "", ErrProductNotFound
		}

		applied := product.Price
		if pl.AppliedPrice != nil {
			applied = *pl.AppliedPrice
		}
		start := time.Now()
		if pl.StartDate != nil {
			start = *pl.StartDate
		}
		total += applied
		lines = append(lines, line{product: product, applied: applied, start: start})
	}

	pointPayment := req.Payments.Points
	if pointPayment > 0 {
		balance, err := points.Balance(db, req.MemberID, time.Now())
		if err != nil {
			return "", err
		}
		if pointPayment > balance {
			return "", points.ErrInsufficientBalance
		}
	}

	cashLike := req.Payments.Cash + req.Payments.Card + req.Payments.Transfer
	received := pointPayment + cashLike

	orderType := req.OrderType
	if orderType == "" {
		orderType = models.PaymentTypeCourse
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		paid := received
		if paid > total {
			paid = total
		}

		items := make([]models.PaymentItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, models.PaymentItem{
				ProductID:    l.product.ID,
				ProductName:  l.product.Name,
				AppliedPrice: l.applied,
			})
		}
		itemsJSON, err := json.Marshal(items)
		if err != nil {
			return err
		}

		payment := models.Payment{
			OrderID:        orderID,
			MemberID:       req.MemberID,
			Items:          itemsJSON,
			TotalAmount:    total,
			PaidAmount:     paid,
			UnpaidAmount:   total - paid,
			CashAmount:     req.Payments.Cash,
			CardAmount:     req.Payments.Card,
			TransferAmount: req.Payments.Transfer,
			PointAmount:    pointPayment,
			PaymentType:    orderType,
			PaymentMethod:  methodSummary(req.Payments),
			Description:    req.Description,
			PaidAt:         time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		// Shortfall lands on the later enrollments: each product is paid
		// off in order until the received amount runs out.
		paidLeft := paid
		for _, l := range lines {
			linePaid := l.applied
			if linePaid > paidLeft {
				linePaid = paidLeft
			}
			paidLeft -= linePaid

			enr := models.CourseEnrollment{
				MemberID:     req.MemberID,
				ProductID:    l.product.ID,
				ProductName:  l.product.Name,
				AppliedPrice: l.applied,
				ProgramType:  l.product.ProgramType,
				Status:       models.EnrollmentStatusActive,
				StartDate:    l.start,
				PaidAmount:   linePaid,
				UnpaidAmount: l.applied - linePaid,
				OrderID:      orderID,
			}
			if enr.UnpaidAmount > 0 {
				enr.Status = models.EnrollmentStatusUnpaid
			}

			switch l.product.ProgramType {
			case models.ProgramTypeCount:
				enr.SessionCount = l.product.Sessions
			case models.ProgramTypeDuration:
				end := l.start.AddDate(0, l.product.Months, 0)
				enr.EndDate = &end
			}

			if err := tx.Create(&enr).Error; err != nil {
				return err
			}
		}

		if pointPayment > 0 {
			desc := fmt.Sprintf("상품 결제 포인트 사용: %s", member.Name)
			if err := points.ConsumeFIFO(tx, req.MemberID, pointPayment, orderID, desc); err != nil {
				return err
			}
		}

		if received > total {
			excess := received - total
			paymentID := payment.ID
			opts := points.EarnOptions{
				ExpiryDate:       points.DefaultExpiry(time.Now()),
				RelatedPaymentID: &paymentID,
				RelatedOrderID:   orderID,
			}

			if _, err := points.Earn(tx, req.MemberID, excess, "order_excess", "초과 결제 포인트 적립", opts); err != nil {
				return err
			}

			if bonus := bonusFor(excess, req.Payments.BonusEnabled); bonus > 0 {
				if _, err := points.Earn(tx, req.MemberID, bonus, "bonus", "초과 결제 보너스 포인트", opts); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

// bonusFor computes the tiered overpayment bonus: one bonus block per full
// bonus unit of surplus.
func bonusFor(excess int64, enabled bool) int64 {
	if !enabled {
		return 0
	}

	unit := int64(1000000)
	amount := int64(100000)
	if config.AppConfig != nil {
		unit = config.AppConfig.BonusUnit
		amount = config.AppConfig.BonusAmount
	}
	if unit <= 0 || excess < unit {
		return 0
	}
	return (excess / unit) * amount
}

func methodSummary(p PaymentSplit) string {
	parts := make([]string, 0, 4)
	if p.Cash > 0 {
		parts = append(parts, "cash")
	}
	if p.Card > 0 {
		parts = append(parts, "card")
	}
	if p.Transfer > 0 {
		parts = append(parts, "transfer")
	}
	if p.Points > 0 {
		parts = append(parts, "points")
	}
	if len(parts) == 0 {
		return "none"
	}

	summary := parts[0]
	for _, p := range parts[1:] {
		summary += "+" + p
	}
	return summary
}
