package cycle

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
	LutealPhaseDays     = 14
)

// Preferences is the user-owned profile the engine reads. The engine never
// validates ranges; callers supply sane values.
type Preferences struct {
	AvgCycleLengthDays      int    `json:"avg_cycle_length_days"`
	AvgPeriodLengthDays     int    `json:"avg_period_length_days"`
	LastMenstrualPeriodDate string `json:"last_menstrual_period_date,omitempty"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		AvgCycleLengthDays:  DefaultCycleLength,
		AvgPeriodLengthDays: DefaultPeriodLength,
	}
}

func (p Preferences) cycleLength() int {
	if p.AvgCycleLengthDays <= 0 {
		return DefaultCycleLength
	}
	return p.AvgCycleLengthDays
}

func (p Preferences) periodLength() int {
	if p.AvgPeriodLengthDays <= 0 {
		return DefaultPeriodLength
	}
	return p.AvgPeriodLengthDays
}

// lastMenstrualPeriod returns the parsed LMP; a malformed value counts as unset.
func (p Preferences) lastMenstrualPeriod(logger *zap.Logger) (time.Time, bool) {
	if p.LastMenstrualPeriodDate == "" {
		return time.Time{}, false
	}
	day, err := ParseDay(p.LastMenstrualPeriodDate)
	if err != nil {
		if logger != nil {
			logger.Warn("ignoring malformed last menstrual period date",
				zap.String("value", p.LastMenstrualPeriodDate), zap.Error(err))
		}
		return time.Time{}, false
	}
	return day, true
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func medianInt(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, 0, len(values))
	sorted = append(sorted, values...)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return int(float64(sorted[mid-1]+sorted[mid])/2 + 0.5)
}

func tailInts(values []int, n int) []int {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
