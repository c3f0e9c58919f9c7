package models

import "time"

const (
	RoleOwner = "owner"

	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

type User struct {
	ID                 uint       `gorm:"primaryKey"`
	Email              string     `gorm:"uniqueIndex;not null"`
	DisplayName        string     `gorm:"not null;default:''"`
	PasswordHash       string     `gorm:"not null"`
	Role               string     `gorm:"not null;default:owner"`
	MustChangePassword bool       `gorm:"not null;default:false"`
	CycleLength        int        `gorm:"not null;default:28"`
	PeriodLength       int        `gorm:"not null;default:5"`
	LastPeriodStart    *time.Time `gorm:"type:date"`
	CreatedAt          time.Time  `gorm:"not null"`
}
