package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/cycletrack/internal/cycle"
	"github.com/terraincognita07/cycletrack/internal/models"
)

var ErrInvalidDay = errors.New("invalid day")

// Today is the calendar day of now in location, as a UTC-midnight value.
func Today(now time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return cycle.DayOf(now.In(location))
}

func ParseRequestDay(raw string) (time.Time, error) {
	day, err := cycle.ParseDay(raw)
	if err != nil {
		return time.Time{}, ErrInvalidDay
	}
	return day, nil
}

func DayHasData(entry models.DailyLog) bool {
	if entry.IsPeriod || len(entry.SymptomIDs) > 0 {
		return true
	}
	if strings.TrimSpace(entry.Notes) != "" {
		return true
	}
	return entry.Flow != "" && entry.Flow != models.FlowNone
}

func RemoveUint(values []uint, needle uint) []uint {
	filtered := make([]uint, 0, len(values))
	for _, value := range values {
		if value != needle {
			filtered = append(filtered, value)
		}
	}
	return filtered
}
