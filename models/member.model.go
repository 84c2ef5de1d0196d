package models

import (
	"time"

	"gorm.io/gorm"
)

// Member holds identity and profile only. Point balance is never stored
// here; it is derived from the point_transactions ledger.
type Member struct {
	gorm.Model
	Name      string     `gorm:"not null" json:"name"`
	Phone     string     `gorm:"uniqueIndex;not null" json:"phone"`
	Email     string     `gorm:"default:''" json:"email"`
	Gender    string     `gorm:"type:varchar(10);default:''" json:"gender"`
	BirthDate *time.Time `json:"birthDate"`
	Address   string     `gorm:"default:''" json:"address"`
	BranchID  uint       `gorm:"index;default:0" json:"branchId"`
	JoinDate  time.Time  `gorm:"not null" json:"joinDate"`
	Memo      string     `gorm:"type:text" json:"memo"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	IsDeleted bool       `gorm:"default:false" json:"isDeleted"`
}

func (Member) TableName() string {
	return "members"
}
