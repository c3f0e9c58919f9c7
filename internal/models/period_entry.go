package models

import "time"

// PeriodEntry is an explicit start/end range recorded by the user, shown
// on the calendar beneath logged bleeding days.
type PeriodEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Notes     string
	CreatedAt time.Time
}
