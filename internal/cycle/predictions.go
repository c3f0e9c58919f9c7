package cycle

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type PredictionSource string

const (
	SourceLatestPeriod     PredictionSource = "latest_period"
	SourceHistoricalPeriod PredictionSource = "historical_period"
	SourceLMP              PredictionSource = "lmp"
)

const mediumConfidenceGroups = 2

// FertilePrediction is one forward-looking ovulation projection. ComputedAt is
// the day of the period it is based on, so ordering by it orders by recency.
type FertilePrediction struct {
	BasedOnDate        time.Time        `json:"based_on_date"`
	ComputedAt         time.Time        `json:"computed_at"`
	OvulationDate      time.Time        `json:"ovulation_date"`
	FertileWindowStart time.Time        `json:"fertile_window_start"`
	FertileWindowEnd   time.Time        `json:"fertile_window_end"`
	CycleLengthUsed    int              `json:"cycle_length_used"`
	Confidence         Confidence       `json:"confidence"`
	Source             PredictionSource `json:"source"`
}

func (p FertilePrediction) Window() DayRange {
	return DayRange{Start: p.FertileWindowStart, End: p.FertileWindowEnd}
}

type PredictionHistory struct {
	Latest     *FertilePrediction  `json:"latest_prediction"`
	All        []FertilePrediction `json:"all_predictions"`
	ComputedAt time.Time           `json:"computed_at"`
}

// BuildPredictionHistory derives one prediction per period group, plus one for
// the last menstrual period when it is not already a logged day. Predictions
// that would land before the earliest logged period are dropped, as are
// references later than now.
func BuildPredictionHistory(days []time.Time, prefs Preferences, now time.Time) PredictionHistory {
	return buildPredictionHistory(days, prefs, now, nil)
}

func buildPredictionHistory(days []time.Time, prefs Preferences, now time.Time, logger *zap.Logger) PredictionHistory {
	history := PredictionHistory{
		All:        []FertilePrediction{},
		ComputedAt: now,
	}
	today := DayOf(now)
	cycleLength := prefs.cycleLength()

	allGroups := GroupConsecutiveDays(days)
	var earliest time.Time
	if len(allGroups) > 0 {
		earliest = allGroups[0].Start()
	}
	groups := pastGroups(allGroups, today)

	for index, group := range groups {
		recency := len(groups) - 1 - index
		prediction, ok := predictFrom(group.Start(), cycleLength, earliest)
		if !ok {
			continue
		}
		prediction.Confidence = confidenceForRecency(recency)
		prediction.Source = SourceHistoricalPeriod
		if recency == 0 {
			prediction.Source = SourceLatestPeriod
		}
		history.All = append(history.All, prediction)
	}

	if lmp, ok := prefs.lastMenstrualPeriod(logger); ok && !lmp.After(today) && !containsDay(days, lmp) {
		if prediction, ok := predictFrom(lmp, cycleLength, earliest); ok {
			prediction.Confidence = ConfidenceMedium
			prediction.Source = SourceLMP
			history.All = append(history.All, prediction)
		}
	}

	sort.SliceStable(history.All, func(i, j int) bool {
		return history.All[i].ComputedAt.After(history.All[j].ComputedAt)
	})
	if len(history.All) > 0 {
		latest := history.All[0]
		history.Latest = &latest
	}
	return history
}

func predictFrom(reference time.Time, cycleLength int, earliest time.Time) (FertilePrediction, bool) {
	if !earliest.IsZero() {
		nextCycleStart := AddDays(reference, cycleLength)
		if nextCycleStart.Before(earliest) {
			return FertilePrediction{}, false
		}
	}

	window := PredictOvulation(reference, cycleLength)
	if !earliest.IsZero() && window.FertileWindowStart.Before(earliest) {
		return FertilePrediction{}, false
	}

	return FertilePrediction{
		BasedOnDate:        reference,
		ComputedAt:         reference,
		OvulationDate:      window.OvulationDate,
		FertileWindowStart: window.FertileWindowStart,
		FertileWindowEnd:   window.FertileWindowEnd,
		CycleLengthUsed:    cycleLength,
	}, true
}

func confidenceForRecency(recency int) Confidence {
	switch {
	case recency == 0:
		return ConfidenceHigh
	case recency <= mediumConfidenceGroups:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// pastGroups drops groups that start after today; they cannot anchor a prediction.
func pastGroups(groups []PeriodGroup, today time.Time) []PeriodGroup {
	kept := make([]PeriodGroup, 0, len(groups))
	for _, group := range groups {
		if group.Start().After(today) {
			continue
		}
		kept = append(kept, group)
	}
	return kept
}
