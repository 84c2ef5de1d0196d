package models

import "gorm.io/gorm"

// ProgramType distinguishes how an entitlement is consumed.
type ProgramType string

const (
	ProgramTypeCount    ProgramType = "count"    // fixed number of sessions
	ProgramTypeDuration ProgramType = "duration" // usable until end date
)

// Product is a catalog item. Once referenced by a payment or enrollment it
// is treated as immutable apart from administrative price edits; purchases
// snapshot name and price onto the enrollment.
type Product struct {
	gorm.Model
	Name        string      `gorm:"not null" json:"name"`
	ProgramType ProgramType `gorm:"type:varchar(20);not null" json:"programType"`
	Price       int64       `gorm:"not null" json:"price"`
	Sessions    int         `gorm:"default:0" json:"sessions"` // count programs
	Months      int         `gorm:"default:0" json:"months"`   // duration programs
	BranchID    uint        `gorm:"index;default:0" json:"branchId"`
	IsActive    bool        `gorm:"default:true" json:"isActive"`
	IsDeleted   bool        `gorm:"default:false" json:"isDeleted"`
}

func (Product) TableName() string {
	return "products"
}
