package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName        string `gorm:"default:''"`
	LastName         string `gorm:"default:''"`
	Email            string `gorm:"unique;not null"`
	Mobile           string `gorm:"unique;not null"`
	Password         string `gorm:"not null" json:"-"`
	IsMobileVerified bool   `gorm:"default:false"`
	IsEmailVerified  bool   `gorm:"default:false"`
	LastLogin        time.Time
	IsDeleted        bool `gorm:"default:false"`
}
