package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/cycletrack/internal/cycle"
	"github.com/terraincognita07/cycletrack/internal/models"
)

var (
	ErrDayNotFound = errors.New("day not found")
	ErrDayInFuture = errors.New("day is in the future")
	ErrDayRange    = errors.New("day range invalid")
)

type DayLogRepository interface {
	ListByUserRange(userID uint, from *time.Time, to *time.Time) ([]models.DailyLog, error)
	ListPeriodDays(userID uint) ([]time.Time, error)
	FindByUserAndDay(userID uint, day time.Time) (models.DailyLog, bool, error)
	Create(entry *models.DailyLog) error
	Save(entry *models.DailyLog) error
	DeleteByUserAndDay(userID uint, day time.Time) (bool, error)
}

type SymptomIDValidator interface {
	ValidateSymptomIDs(userID uint, ids []uint) ([]uint, error)
}

type DayService struct {
	logs     DayLogRepository
	symptoms SymptomIDValidator
	now      func() time.Time
	location *time.Location
}

func NewDayService(logs DayLogRepository, symptoms SymptomIDValidator, now func() time.Time, location *time.Location) *DayService {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &DayService{logs: logs, symptoms: symptoms, now: now, location: location}
}

// ListLogs returns days with data between fromRaw and toRaw inclusive;
// empty bounds are open.
func (service *DayService) ListLogs(userID uint, fromRaw string, toRaw string) ([]models.DailyLog, error) {
	var from, to *time.Time
	if fromRaw != "" {
		day, err := ParseRequestDay(fromRaw)
		if err != nil {
			return nil, err
		}
		from = &day
	}
	if toRaw != "" {
		day, err := ParseRequestDay(toRaw)
		if err != nil {
			return nil, err
		}
		end := cycle.AddDays(day, 1)
		to = &end
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, ErrDayRange
	}

	logs, err := service.logs.ListByUserRange(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	filtered := logs[:0]
	for _, entry := range logs {
		if DayHasData(entry) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

// GetDay returns the stored log, or an empty log for the day when nothing
// was recorded.
func (service *DayService) GetDay(userID uint, dayRaw string) (models.DailyLog, error) {
	day, err := ParseRequestDay(dayRaw)
	if err != nil {
		return models.DailyLog{}, err
	}
	entry, found, err := service.logs.FindByUserAndDay(userID, day)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("load day: %w", err)
	}
	if !found {
		return models.DailyLog{UserID: userID, Date: day, Flow: models.FlowNone, SymptomIDs: []uint{}}, nil
	}
	return entry, nil
}

func (service *DayService) UpsertDay(userID uint, dayRaw string, input DayEntryInput) (models.DailyLog, error) {
	day, err := ParseRequestDay(dayRaw)
	if err != nil {
		return models.DailyLog{}, err
	}
	if day.After(Today(service.now(), service.location)) {
		return models.DailyLog{}, ErrDayInFuture
	}

	input, err = NormalizeDayEntryInput(input)
	if err != nil {
		return models.DailyLog{}, err
	}
	if service.symptoms != nil && len(input.SymptomIDs) > 0 {
		input.SymptomIDs, err = service.symptoms.ValidateSymptomIDs(userID, input.SymptomIDs)
		if err != nil {
			return models.DailyLog{}, err
		}
	}

	entry, found, err := service.logs.FindByUserAndDay(userID, day)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("load day: %w", err)
	}
	if !found {
		entry = models.DailyLog{UserID: userID, Date: day}
	}
	entry.IsPeriod = input.IsPeriod
	entry.Flow = input.Flow
	entry.Notes = input.Notes
	entry.SymptomIDs = input.SymptomIDs

	if !found {
		if err := service.logs.Create(&entry); err != nil {
			return models.DailyLog{}, fmt.Errorf("create day: %w", err)
		}
		return entry, nil
	}
	if err := service.logs.Save(&entry); err != nil {
		return models.DailyLog{}, fmt.Errorf("update day: %w", err)
	}
	return entry, nil
}

func (service *DayService) DeleteDay(userID uint, dayRaw string) error {
	day, err := ParseRequestDay(dayRaw)
	if err != nil {
		return err
	}
	deleted, err := service.logs.DeleteByUserAndDay(userID, day)
	if err != nil {
		return fmt.Errorf("delete day: %w", err)
	}
	if !deleted {
		return ErrDayNotFound
	}
	return nil
}

// PeriodDates lists every logged bleeding day as YYYY-MM-DD.
func (service *DayService) PeriodDates(userID uint) ([]string, error) {
	days, err := service.logs.ListPeriodDays(userID)
	if err != nil {
		return nil, fmt.Errorf("list period days: %w", err)
	}
	dates := make([]string, 0, len(days))
	for _, day := range days {
		dates = append(dates, cycle.FormatDay(day))
	}
	return dates, nil
}
