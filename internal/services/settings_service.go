package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/cycletrack/internal/cycle"
	"github.com/terraincognita07/cycletrack/internal/models"
	"gorm.io/gorm"
)

type SettingsUserRepository interface {
	LoadCycleSettings(userID uint) (models.User, error)
	UpdateCycleSettings(userID uint, cycleLength int, periodLength int, lastPeriodStart *time.Time) error
}

// CycleSettings are the per-user averages the engine falls back on.
type CycleSettings struct {
	CycleLength     int
	PeriodLength    int
	LastPeriodStart *time.Time
}

// Preferences converts the stored settings into engine input.
func (settings CycleSettings) Preferences() cycle.Preferences {
	prefs := cycle.Preferences{
		AvgCycleLengthDays:  settings.CycleLength,
		AvgPeriodLengthDays: settings.PeriodLength,
	}
	if settings.LastPeriodStart != nil {
		prefs.LastMenstrualPeriodDate = cycle.FormatDay(cycle.DayOf(*settings.LastPeriodStart))
	}
	return prefs
}

type SettingsService struct {
	users    SettingsUserRepository
	defaults CycleSettings
	now      func() time.Time
	location *time.Location
}

func NewSettingsService(users SettingsUserRepository, defaults CycleSettings, now func() time.Time, location *time.Location) *SettingsService {
	if !IsValidCycleLength(defaults.CycleLength) {
		defaults.CycleLength = models.DefaultCycleLength
	}
	if !IsValidPeriodLength(defaults.PeriodLength) {
		defaults.PeriodLength = models.DefaultPeriodLength
	}
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &SettingsService{users: users, defaults: defaults, now: now, location: location}
}

// LoadCycleSettings substitutes the configured defaults for stored values
// that are out of range.
func (service *SettingsService) LoadCycleSettings(userID uint) (CycleSettings, error) {
	user, err := service.users.LoadCycleSettings(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CycleSettings{}, ErrUserNotFound
	}
	if err != nil {
		return CycleSettings{}, fmt.Errorf("load cycle settings: %w", err)
	}

	settings := CycleSettings{
		CycleLength:     user.CycleLength,
		PeriodLength:    user.PeriodLength,
		LastPeriodStart: user.LastPeriodStart,
	}
	if !IsValidCycleLength(settings.CycleLength) {
		settings.CycleLength = service.defaults.CycleLength
	}
	if !IsValidPeriodLength(settings.PeriodLength) {
		settings.PeriodLength = service.defaults.PeriodLength
	}
	return settings, nil
}

func (service *SettingsService) UpdateCycleSettings(userID uint, input CycleSettingsInput) (CycleSettings, error) {
	settings, err := ValidateCycleSettings(input, Today(service.now(), service.location))
	if err != nil {
		return CycleSettings{}, err
	}
	if err := service.users.UpdateCycleSettings(userID, settings.CycleLength, settings.PeriodLength, settings.LastPeriodStart); err != nil {
		return CycleSettings{}, fmt.Errorf("update cycle settings: %w", err)
	}
	return settings, nil
}
