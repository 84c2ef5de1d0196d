package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentType classifies what a settlement was for.
type PaymentType string

const (
	PaymentTypeCourse PaymentType = "course"
	PaymentTypeAsset  PaymentType = "asset"
	PaymentTypeOther  PaymentType = "other"
)

// Payment is the immutable settlement record for one order. Completing an
// outstanding balance later writes a new Payment row instead of mutating
// this one, so the settlement history stays append-only.
type Payment struct {
	gorm.Model
	OrderID  string `gorm:"type:varchar(64);uniqueIndex;not null" json:"orderId"`
	MemberID uint   `gorm:"index;not null" json:"memberId"`

	// Items is the purchased-product snapshot (id, name, applied price) as
	// stored at settlement time.
	Items datatypes.JSON `json:"items"`

	TotalAmount  int64 `gorm:"not null" json:"totalAmount"`
	PaidAmount   int64 `gorm:"not null" json:"paidAmount"`
	UnpaidAmount int64 `gorm:"not null;default:0" json:"unpaidAmount"`

	// Settlement split across instruments.
	CashAmount     int64 `gorm:"default:0" json:"cashAmount"`
	CardAmount     int64 `gorm:"default:0" json:"cardAmount"`
	TransferAmount int64 `gorm:"default:0" json:"transferAmount"`
	PointAmount    int64 `gorm:"default:0" json:"pointAmount"`

	PaymentType     PaymentType `gorm:"type:varchar(20);not null;default:'course'" json:"paymentType"`
	PaymentMethod   string      `gorm:"type:varchar(30);default:''" json:"paymentMethod"`
	RelatedCourseID *uint       `gorm:"index" json:"relatedCourseId"`
	Description     string      `gorm:"type:text" json:"description"`
	PaidAt          time.Time   `gorm:"not null" json:"paidAt"`
	IsDeleted       bool        `gorm:"default:false" json:"isDeleted"`

	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentItem is one line of the Items snapshot.
type PaymentItem struct {
	ProductID    uint   `json:"productId"`
	ProductName  string `json:"productName"`
	AppliedPrice int64  `json:"appliedPrice"`
}
