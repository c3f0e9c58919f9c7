package models

import "time"

const (
	FlowNone     = "none"
	FlowSpotting = "spotting"
	FlowLight    = "light"
	FlowMedium   = "medium"
	FlowHeavy    = "heavy"
)

// DailyLog is one calendar day of journal data. IsPeriod marks the day as
// a bleeding day for cycle analysis.
type DailyLog struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;uniqueIndex:uidx_user_date"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uidx_user_date"`
	IsPeriod   bool      `gorm:"not null;default:false"`
	Flow       string    `gorm:"not null;default:none"`
	SymptomIDs []uint    `gorm:"serializer:json"`
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func IsValidFlow(flow string) bool {
	switch flow {
	case FlowNone, FlowSpotting, FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}
