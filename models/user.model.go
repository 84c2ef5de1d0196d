package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff account for the admin console.
type User struct {
	gorm.Model
	Name      string    `gorm:"default:''"`
	Email     string    `gorm:"unique;not null"`
	Password  string    `gorm:"not null"`
	Role      string    `gorm:"default:'STAFF'"` // STAFF, ADMIN, SUPER-ADMIN
	BranchID  uint      `gorm:"default:0"`
	LastLogin time.Time `gorm:"default:NULL"`
	IsActive  bool      `gorm:"default:true"`
	IsDeleted bool      `gorm:"default:false"`
}
