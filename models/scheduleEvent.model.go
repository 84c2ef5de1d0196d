package models

import (
	"time"

	"gorm.io/gorm"
)

type ScheduleEventType string

const (
	ScheduleTypeClass        ScheduleEventType = "class"
	ScheduleTypeConsultation ScheduleEventType = "consultation"
	ScheduleTypeOther        ScheduleEventType = "other"
)

type ScheduleEventStatus string

const (
	ScheduleStatusActive    ScheduleEventStatus = "active"
	ScheduleStatusCompleted ScheduleEventStatus = "completed"
	ScheduleStatusCancelled ScheduleEventStatus = "cancelled"
	ScheduleStatusNoShow    ScheduleEventStatus = "noshow"
)

// ScheduleEvent is one calendar reservation and the source of truth for
// session consumption. Cancellations and no-shows are status changes on the
// event, never deletions, so session counts can always be replayed from
// history.
type ScheduleEvent struct {
	gorm.Model
	EnrollmentID *uint               `gorm:"index" json:"enrollmentId"`
	MemberID     uint                `gorm:"index;not null" json:"memberId"`
	Type         ScheduleEventType   `gorm:"type:varchar(20);not null;default:'class'" json:"type"`
	Status       ScheduleEventStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Title        string              `gorm:"default:''" json:"title"`
	StartTime    time.Time           `gorm:"not null;index" json:"startTime"`
	EndTime      time.Time           `gorm:"not null" json:"endTime"`
	Memo         string              `gorm:"type:text" json:"memo"`

	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (ScheduleEvent) TableName() string {
	return "schedule_events"
}
