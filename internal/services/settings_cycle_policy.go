package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/cycletrack/internal/cycle"
)

const (
	MinCycleLength  = 15
	MaxCycleLength  = 90
	MinPeriodLength = 1
	MaxPeriodLength = 14

	lastPeriodStartMaxAgeYears = 2
)

var (
	ErrSettingsCycleLengthOutOfRange    = errors.New("settings cycle length out of range")
	ErrSettingsPeriodLengthOutOfRange   = errors.New("settings period length out of range")
	ErrSettingsPeriodLengthIncompatible = errors.New("settings period length incompatible with cycle length")
	ErrSettingsCycleStartDateInvalid    = errors.New("settings cycle start date invalid")
)

type CycleSettingsInput struct {
	CycleLength        int
	PeriodLength       int
	LastPeriodStartRaw string
}

func IsValidCycleLength(value int) bool {
	return value >= MinCycleLength && value <= MaxCycleLength
}

func IsValidPeriodLength(value int) bool {
	return value >= MinPeriodLength && value <= MaxPeriodLength
}

// ValidateCycleSettings checks ranges, requires the period to end before the
// projected fertile window opens, and bounds the last period start to the past two
// years.
func ValidateCycleSettings(input CycleSettingsInput, today time.Time) (CycleSettings, error) {
	if !IsValidCycleLength(input.CycleLength) {
		return CycleSettings{}, ErrSettingsCycleLengthOutOfRange
	}
	if !IsValidPeriodLength(input.PeriodLength) {
		return CycleSettings{}, ErrSettingsPeriodLengthOutOfRange
	}
	if input.PeriodLength >= cycle.FertileWindowOpeningDay(input.CycleLength) {
		return CycleSettings{}, ErrSettingsPeriodLengthIncompatible
	}

	settings := CycleSettings{CycleLength: input.CycleLength, PeriodLength: input.PeriodLength}

	raw := strings.TrimSpace(input.LastPeriodStartRaw)
	if raw == "" {
		return settings, nil
	}
	start, err := cycle.ParseDay(raw)
	if err != nil {
		return CycleSettings{}, ErrSettingsCycleStartDateInvalid
	}
	oldest := today.AddDate(-lastPeriodStartMaxAgeYears, 0, 0)
	if start.After(today) || start.Before(oldest) {
		return CycleSettings{}, ErrSettingsCycleStartDateInvalid
	}
	settings.LastPeriodStart = &start
	return settings, nil
}
