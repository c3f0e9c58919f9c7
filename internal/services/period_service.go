package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/cycletrack/internal/cycle"
	"github.com/terraincognita07/cycletrack/internal/models"
	"gorm.io/gorm"
)

const maxPeriodEntryDays = 31

var (
	ErrPeriodRangeInvalid  = errors.New("period range invalid")
	ErrPeriodStartInFuture = errors.New("period start is in the future")
	ErrPeriodNotFound      = errors.New("period not found")
)

type PeriodEntryRepository interface {
	ListByUser(userID uint) ([]models.PeriodEntry, error)
	Create(entry *models.PeriodEntry) error
	FindByIDForUser(entryID uint, userID uint) (models.PeriodEntry, error)
	Delete(entry *models.PeriodEntry) error
}

type PeriodService struct {
	entries  PeriodEntryRepository
	now      func() time.Time
	location *time.Location
}

func NewPeriodService(entries PeriodEntryRepository, now func() time.Time, location *time.Location) *PeriodService {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &PeriodService{entries: entries, now: now, location: location}
}

func (service *PeriodService) List(userID uint) ([]models.PeriodEntry, error) {
	return service.entries.ListByUser(userID)
}

// Create records a period range. An empty endRaw means a single-day entry.
func (service *PeriodService) Create(userID uint, startRaw string, endRaw string, notes string) (models.PeriodEntry, error) {
	start, err := ParseRequestDay(startRaw)
	if err != nil {
		return models.PeriodEntry{}, err
	}
	end := start
	if strings.TrimSpace(endRaw) != "" {
		if end, err = ParseRequestDay(endRaw); err != nil {
			return models.PeriodEntry{}, err
		}
	}

	if end.Before(start) || cycle.DaysBetween(start, end) >= maxPeriodEntryDays {
		return models.PeriodEntry{}, ErrPeriodRangeInvalid
	}
	if start.After(Today(service.now(), service.location)) {
		return models.PeriodEntry{}, ErrPeriodStartInFuture
	}

	entry := models.PeriodEntry{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Notes:     TrimDayNotes(strings.TrimSpace(notes)),
		CreatedAt: service.now().UTC(),
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.PeriodEntry{}, fmt.Errorf("create period: %w", err)
	}
	return entry, nil
}

func (service *PeriodService) Delete(userID uint, entryID uint) error {
	entry, err := service.entries.FindByIDForUser(entryID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPeriodNotFound
	}
	if err != nil {
		return fmt.Errorf("load period: %w", err)
	}
	if err := service.entries.Delete(&entry); err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	return nil
}

// RecordedRanges converts stored entries into calendar day ranges.
func (service *PeriodService) RecordedRanges(userID uint) ([]cycle.DayRange, error) {
	entries, err := service.entries.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	ranges := make([]cycle.DayRange, 0, len(entries))
	for _, entry := range entries {
		ranges = append(ranges, cycle.DayRange{Start: cycle.DayOf(entry.StartDate), End: cycle.DayOf(entry.EndDate)})
	}
	return ranges, nil
}
