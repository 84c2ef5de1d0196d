package models

import (
	"time"

	"gorm.io/gorm"
)

// PointTransactionType is the kind of one ledger entry.
type PointTransactionType string

const (
	PointTypeEarned   PointTransactionType = "earned"
	PointTypeUsed     PointTransactionType = "used"
	PointTypeExpired  PointTransactionType = "expired"
	PointTypeAdjusted PointTransactionType = "adjusted"
)

// PointTransaction is one entry in a member's append-only point ledger.
// Balance is always a fold over this table, never a stored total.
//
// Negative entries (used, expired) record the earning they draw from via
// SourceEarnID so a partially consumed earning that later lapses expires
// only its unconsumed remainder.
type PointTransaction struct {
	gorm.Model
	MemberID    uint                 `gorm:"index;not null" json:"memberId"`
	Amount      int64                `gorm:"not null" json:"amount"` // signed
	Type        PointTransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Source      string               `gorm:"type:varchar(50);default:''" json:"source"`
	Description string               `gorm:"type:text" json:"description"`

	EarnedDate time.Time  `gorm:"not null;index" json:"earnedDate"`
	ExpiryDate *time.Time `gorm:"index" json:"expiryDate"`

	SourceEarnID     *uint  `gorm:"index" json:"sourceEarnId"`
	RelatedPaymentID *uint  `json:"relatedPaymentId"`
	RelatedOrderID   string `gorm:"type:varchar(64);index" json:"relatedOrderId"`

	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (PointTransaction) TableName() string {
	return "point_transactions"
}
