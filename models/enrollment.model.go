package models

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentStatus is the lifecycle state of one purchased entitlement.
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusUnpaid    EnrollmentStatus = "unpaid"
	EnrollmentStatusHold      EnrollmentStatus = "hold"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// CourseEnrollment is one purchased entitlement instance. Product name and
// price are denormalized at purchase time. Status changes go through the
// services/enrollment transition table only; terminal records (completed,
// cancelled) are kept for audit and never deleted.
//
// PaidAmount + UnpaidAmount == AppliedPrice holds at all times.
type CourseEnrollment struct {
	gorm.Model
	MemberID     uint             `gorm:"index;not null" json:"memberId"`
	ProductID    uint             `gorm:"index;not null" json:"productId"`
	ProductName  string           `gorm:"not null" json:"productName"`
	AppliedPrice int64            `gorm:"not null" json:"appliedPrice"`
	ProgramType  ProgramType      `gorm:"type:varchar(20);not null" json:"programType"`
	Status       EnrollmentStatus `gorm:"type:varchar(20);not null;default:'active'" json:"enrollmentStatus"`

	// Count programs. CarriedSessions seeds sessions already consumed before
	// a transfer; the schedule history of the donor enrollment stays on the
	// old record.
	SessionCount    int `gorm:"default:0" json:"sessionCount"`
	CarriedSessions int `gorm:"default:0" json:"carriedSessions"`

	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   *time.Time `json:"endDate"` // duration programs

	PaidAmount   int64 `gorm:"not null;default:0" json:"paidAmount"`
	UnpaidAmount int64 `gorm:"not null;default:0" json:"unpaidAmount"`

	IsHold        bool       `gorm:"default:false" json:"isHold"`
	HoldStartDate *time.Time `json:"holdStartDate"`
	HoldReason    string     `gorm:"default:''" json:"holdReason"`
	TotalHoldDays int        `gorm:"default:0" json:"totalHoldDays"`

	Notes   string `gorm:"type:text" json:"notes"` // append-only audit trail
	OrderID string `gorm:"type:varchar(64);index" json:"orderId"`

	Member  Member  `gorm:"foreignKey:MemberID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
