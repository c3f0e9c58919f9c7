// Package cycle reconstructs menstrual cycles from logged period days and
// projects periods, ovulation, and fertile windows onto a calendar.
//
// Every function is a pure computation over its arguments. The current instant
// is always passed in explicitly.
package cycle

import (
	"time"

	"go.uber.org/zap"
)

// Engine is the string-level entry point used by the HTTP layer. It holds no
// state besides its logger and is safe for concurrent use.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

func (engine *Engine) Groups(periodDates []string) []PeriodGroup {
	return GroupDateStrings(periodDates, engine.logger)
}

func (engine *Engine) History(periodDates []string, prefs Preferences) []CycleSummary {
	return ReconstructHistory(ParseDays(periodDates, engine.logger), engine.sanitize(prefs))
}

func (engine *Engine) Predictions(periodDates []string, prefs Preferences, now time.Time) PredictionHistory {
	return buildPredictionHistory(ParseDays(periodDates, engine.logger), engine.sanitize(prefs), now, engine.logger)
}

func (engine *Engine) CurrentCycle(periodDates []string, prefs Preferences, now time.Time) CurrentCycle {
	return BuildCurrentCycle(ParseDays(periodDates, engine.logger), engine.sanitize(prefs), now)
}

// Calendar builds the annotation map for month ("YYYY-MM"). Only an
// unparseable month is an error; malformed period dates are skipped.
func (engine *Engine) Calendar(periodDates []string, recorded []DayRange, prefs Preferences, month string, now time.Time) (Calendar, error) {
	target, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	days := ParseDays(periodDates, engine.logger)
	prefs = engine.sanitize(prefs)
	return BuildCalendar(CalendarInput{
		Days:            days,
		RecordedPeriods: recorded,
		Preferences:     prefs,
		Month:           target,
		Predictions:     buildPredictionHistory(days, prefs, now, engine.logger),
		Now:             now,
		Logger:          engine.logger,
	}), nil
}

// sanitize drops a malformed LMP once, with a warning, so downstream code sees
// either a valid date or none.
func (engine *Engine) sanitize(prefs Preferences) Preferences {
	if prefs.LastMenstrualPeriodDate == "" {
		return prefs
	}
	if _, ok := prefs.lastMenstrualPeriod(engine.logger); !ok {
		prefs.LastMenstrualPeriodDate = ""
	}
	return prefs
}
