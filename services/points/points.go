package points

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/config"
	"github.com/Sun-Kwak/lavida-cms-sub000/models"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var (
	// ErrInsufficientBalance is returned when a spend exceeds the member's
	// unexpired point balance. Nothing is written in that case.
	ErrInsufficientBalance = errors.New("insufficient point balance")

	// ErrInvalidAmount is returned for non-positive earn amounts.
	ErrInvalidAmount = errors.New("point amount must be greater than 0")
)

// earning is one positive ledger entry together with its unconsumed
// remainder after all used/expired entries drawing from it.
type earning struct {
	entry     models.PointTransaction
	remaining int64
}

// loadEarnings returns the member's positive entries that are unexpired as
// of the given time, ordered oldest first, with per-entry remainders and
// the total balance.
func loadEarnings(db *gorm.DB, memberID uint, asOf time.Time) ([]earning, int64, error) {
	var sources []models.PointTransaction
	if err := db.
		Where("member_id = ? AND amount > 0", memberID).
		Where("expiry_date IS NULL OR expiry_date > ?", asOf).
		Order("earned_date asc, id asc").
		Find(&sources).Error; err != nil {
		return nil, 0, err
	}

	consumed := make(map[uint]int64)
	var spends []models.PointTransaction
	if err := db.
		Where("member_id = ? AND amount < 0 AND source_earn_id IS NOT NULL", memberID).
		Find(&spends).Error; err != nil {
		return nil, 0, err
	}
	for _, s := range spends {
		consumed[*s.SourceEarnID] += s.Amount
	}

	earnings := make([]earning, 0, len(sources))
	var balance int64
	for _, src := range sources {
		remaining := src.Amount + consumed[src.ID]
		if remaining < 0 {
			remaining = 0
		}
		balance += remaining
		earnings = append(earnings, earning{entry: src, remaining: remaining})
	}
	return earnings, balance, nil
}

// Balance returns the member's point balance as of the given time: the sum
// of unconsumed remainders of all unexpired earnings. Never negative.
func Balance(db *gorm.DB, memberID uint, asOf time.Time) (int64, error) {
	_, balance, err := loadEarnings(db, memberID, asOf)
	return balance, err
}

// EarnOptions carries optional references for an earned entry.
type EarnOptions struct {
	ExpiryDate       *time.Time
	RelatedPaymentID *uint
	RelatedOrderID   string
}

// Earn appends one earned entry to the member's ledger.
func Earn(db *gorm.DB, memberID uint, amount int64, source, description string, opts EarnOptions) (*models.PointTransaction, error) {
	return credit(db, memberID, amount, models.PointTypeEarned, source, description, opts)
}

// Adjust appends one adjusted entry (administrative credit). Adjusted
// entries participate in FIFO consumption like earnings.
func Adjust(db *gorm.DB, memberID uint, amount int64, description string, opts EarnOptions) (*models.PointTransaction, error) {
	return credit(db, memberID, amount, models.PointTypeAdjusted, "adjustment", description, opts)
}

func credit(db *gorm.DB, memberID uint, amount int64, typ models.PointTransactionType, source, description string, opts EarnOptions) (*models.PointTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	entry := models.PointTransaction{
		MemberID:         memberID,
		Amount:           amount,
		Type:             typ,
		Source:           source,
		Description:      description,
		EarnedDate:       time.Now(),
		ExpiryDate:       opts.ExpiryDate,
		RelatedPaymentID: opts.RelatedPaymentID,
		RelatedOrderID:   opts.RelatedOrderID,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ConsumeFIFO spends points against the oldest unexpired earnings first,
// writing one negative used entry per earning drawn from (the last one may
// be partial). The balance is validated before anything is written; on
// ErrInsufficientBalance the ledger is untouched.
func ConsumeFIFO(db *gorm.DB, memberID uint, amount int64, reference, description string) error {
	return consume(db, memberID, amount, models.PointTypeUsed, "use", reference, description)
}

// ConsumeAdjustment is the administrative debit path. It runs the same
// FIFO walk as ConsumeFIFO so the never-negative invariant holds, but tags
// the entries as adjusted.
func ConsumeAdjustment(db *gorm.DB, memberID uint, amount int64, description string) error {
	return consume(db, memberID, amount, models.PointTypeAdjusted, "adjustment", "", description)
}

func consume(db *gorm.DB, memberID uint, amount int64, typ models.PointTransactionType, source, reference, description string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	asOf := time.Now()
	earnings, balance, err := loadEarnings(db, memberID, asOf)
	if err != nil {
		return err
	}
	if amount > balance {
		return ErrInsufficientBalance
	}

	return db.Transaction(func(tx *gorm.DB) error {
		left := amount
		for _, e := range earnings {
			if left == 0 {
				break
			}
			if e.remaining == 0 {
				continue
			}

			take := e.remaining
			if take > left {
				take = left
			}

			sourceID := e.entry.ID
			entry := models.PointTransaction{
				MemberID:       memberID,
				Amount:         -take,
				Type:           typ,
				Source:         source,
				Description:    description,
				EarnedDate:     asOf,
				SourceEarnID:   &sourceID,
				RelatedOrderID: reference,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			left -= take
		}

		if left != 0 {
			// The pre-checked balance guarantees the walk covers the full
			// amount; reaching here means concurrent consumption.
			return fmt.Errorf("fifo walk left %d points unaccounted", left)
		}
		return nil
	})
}

// Expire writes one compensating expired entry per lapsed earning that
// still has an unconsumed remainder. Idempotent: a second sweep finds zero
// remainders and writes nothing. Returns the number of entries written.
func Expire(db *gorm.DB, memberID uint, asOf time.Time) (int, error) {
	var lapsed []models.PointTransaction
	if err := db.
		Where("member_id = ? AND amount > 0", memberID).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", asOf).
		Order("earned_date asc, id asc").
		Find(&lapsed).Error; err != nil {
		return 0, err
	}
	if len(lapsed) == 0 {
		return 0, nil
	}

	consumed := make(map[uint]int64)
	var spends []models.PointTransaction
	if err := db.
		Where("member_id = ? AND amount < 0 AND source_earn_id IS NOT NULL", memberID).
		Find(&spends).Error; err != nil {
		return 0, err
	}
	for _, s := range spends {
		consumed[*s.SourceEarnID] += s.Amount
	}

	written := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, src := range lapsed {
			remaining := src.Amount + consumed[src.ID]
			if remaining <= 0 {
				continue
			}

			sourceID := src.ID
			entry := models.PointTransaction{
				MemberID:     memberID,
				Amount:       -remaining,
				Type:         models.PointTypeExpired,
				Source:       "expiry",
				Description:  fmt.Sprintf("포인트 만료 (적립일 %s)", src.EarnedDate.Format("2006-01-02")),
				EarnedDate:   asOf,
				SourceEarnID: &sourceID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			written++
		}
		return nil
	})
	return written, err
}

// ExpireAll sweeps every member that has lapsed earnings. Safe to invoke
// repeatedly.
func ExpireAll(db *gorm.DB, asOf time.Time) (int, error) {
	var memberIDs []uint
	if err := db.Model(&models.PointTransaction{}).
		Where("amount > 0 AND expiry_date IS NOT NULL AND expiry_date <= ?", asOf).
		Distinct("member_id").
		Pluck("member_id", &memberIDs).Error; err != nil {
		return 0, err
	}

	total := 0
	for _, id := range memberIDs {
		n, err := Expire(db, id, asOf)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// History returns the member's ledger entries newest first with the total
// count for pagination.
func History(db *gorm.DB, memberID uint, txnType string, page, limit int) ([]models.PointTransaction, int64, error) {
	query := db.Model(&models.PointTransaction{}).Where("member_id = ?", memberID)
	if txnType != "" {
		query = query.Where("type = ?", txnType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.PointTransaction
	if err := query.
		Order("earned_date desc, id desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// DefaultExpiry returns the configured expiry stamp for points earned at t:
// end of day, PointExpiryMonths later. Nil when expiry is disabled.
func DefaultExpiry(t time.Time) *time.Time {
	if config.AppConfig == nil || config.AppConfig.PointExpiryMonths <= 0 {
		return nil
	}
	expiry := now.New(t.AddDate(0, config.AppConfig.PointExpiryMonths, 0)).EndOfDay()
	return &expiry
}
