package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/cycletrack/internal/cycle"
	"github.com/terraincognita07/cycletrack/internal/icalfeed"
)

const feedPredictedPeriods = 3

type PeriodDateSource interface {
	PeriodDates(userID uint) ([]string, error)
}

type RecordedPeriodSource interface {
	RecordedRanges(userID uint) ([]cycle.DayRange, error)
}

type CycleSettingsSource interface {
	LoadCycleSettings(userID uint) (CycleSettings, error)
}

type FeedRenderer interface {
	Render(input icalfeed.Input) ([]byte, error)
}

// CycleService reads a fresh snapshot of the user's data on every call and
// hands it to the engine together with the current time.
type CycleService struct {
	engine   *cycle.Engine
	days     PeriodDateSource
	periods  RecordedPeriodSource
	settings CycleSettingsSource
	feed     FeedRenderer
	now      func() time.Time
	location *time.Location
}

type CycleServiceDeps struct {
	Engine   *cycle.Engine
	Days     PeriodDateSource
	Periods  RecordedPeriodSource
	Settings CycleSettingsSource
	Feed     FeedRenderer
	Now      func() time.Time
	Location *time.Location
}

func NewCycleService(deps CycleServiceDeps) *CycleService {
	if deps.Engine == nil {
		deps.Engine = cycle.NewEngine(nil)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &CycleService{
		engine:   deps.Engine,
		days:     deps.Days,
		periods:  deps.Periods,
		settings: deps.Settings,
		feed:     deps.Feed,
		now:      deps.Now,
		location: deps.Location,
	}
}

type cycleSnapshot struct {
	periodDates []string
	settings    CycleSettings
	now         time.Time
}

func (service *CycleService) snapshot(userID uint) (cycleSnapshot, error) {
	periodDates, err := service.days.PeriodDates(userID)
	if err != nil {
		return cycleSnapshot{}, err
	}
	settings, err := service.settings.LoadCycleSettings(userID)
	if err != nil {
		return cycleSnapshot{}, err
	}
	return cycleSnapshot{
		periodDates: periodDates,
		settings:    settings,
		now:         service.now().In(service.location),
	}, nil
}

// Calendar annotates month ("YYYY-MM"); an empty month means the current one.
func (service *CycleService) Calendar(userID uint, month string) (string, cycle.Calendar, error) {
	snap, err := service.snapshot(userID)
	if err != nil {
		return "", nil, err
	}
	if month == "" {
		month = cycle.MonthOf(cycle.DayOf(snap.now)).String()
	}
	recorded, err := service.periods.RecordedRanges(userID)
	if err != nil {
		return "", nil, err
	}

	calendar, err := service.engine.Calendar(snap.periodDates, recorded, snap.settings.Preferences(), month, snap.now)
	if err != nil {
		return "", nil, err
	}
	return month, calendar, nil
}

func (service *CycleService) History(userID uint) ([]cycle.CycleSummary, error) {
	snap, err := service.snapshot(userID)
	if err != nil {
		return nil, err
	}
	return service.engine.History(snap.periodDates, snap.settings.Preferences()), nil
}

func (service *CycleService) Predictions(userID uint) (cycle.PredictionHistory, error) {
	snap, err := service.snapshot(userID)
	if err != nil {
		return cycle.PredictionHistory{}, err
	}
	return service.engine.Predictions(snap.periodDates, snap.settings.Preferences(), snap.now), nil
}

func (service *CycleService) Current(userID uint) (cycle.CurrentCycle, error) {
	snap, err := service.snapshot(userID)
	if err != nil {
		return cycle.CurrentCycle{}, err
	}
	return service.engine.CurrentCycle(snap.periodDates, snap.settings.Preferences(), snap.now), nil
}

// Feed renders the iCalendar subscription for the user's next periods and
// latest fertile window.
func (service *CycleService) Feed(userID uint, language string) ([]byte, error) {
	if service.feed == nil {
		return nil, fmt.Errorf("calendar feed is not configured")
	}
	snap, err := service.snapshot(userID)
	if err != nil {
		return nil, err
	}

	prefs := snap.settings.Preferences()
	current := service.engine.CurrentCycle(snap.periodDates, prefs, snap.now)
	predictions := service.engine.Predictions(snap.periodDates, prefs, snap.now)
	history := service.engine.History(snap.periodDates, prefs)

	return service.feed.Render(icalfeed.Input{
		UserID:           userID,
		Language:         language,
		PredictedPeriods: upcomingPeriods(current, snap.settings, feedPredictedPeriods),
		Latest:           predictions.Latest,
		LoggedCycles:     len(history),
		GeneratedAt:      snap.now,
	})
}

// upcomingPeriods projects count periods forward from the next expected
// start, each lasting the configured period length.
func upcomingPeriods(current cycle.CurrentCycle, settings CycleSettings, count int) []cycle.DayRange {
	if !current.Known {
		return []cycle.DayRange{}
	}
	periods := make([]cycle.DayRange, 0, count)
	for index := 0; index < count; index++ {
		start := cycle.AddDays(current.PredictedNextPeriodDate, index*settings.CycleLength)
		periods = append(periods, cycle.DayRange{Start: start, End: cycle.AddDays(start, settings.PeriodLength-1)})
	}
	return periods
}
