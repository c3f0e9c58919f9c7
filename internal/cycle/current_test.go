package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildCurrentCycleFromRegularHistory(t *testing.T) {
	t.Parallel()

	days := syntheticPeriodDays(mustDay(t, "2024-01-01"), 3, 28, 4)
	now := time.Date(2024, time.March, 5, 18, 30, 0, 0, time.UTC)

	current := BuildCurrentCycle(days, DefaultPreferences(), now)

	assert.True(t, current.Known)
	assert.Equal(t, "2024-02-26", FormatDay(current.CycleStart))
	assert.Equal(t, 9, current.CurrentCycleDayNumber)
	assert.Equal(t, "2024-03-25", FormatDay(current.PredictedNextPeriodDate))
	assert.Equal(t, 20, current.DaysUntilNextPeriod)
	assert.Equal(t, "2024-03-10", FormatDay(current.OvulationDate))
	assert.Equal(t, "2024-03-05", FormatDay(current.FertileWindowStart))
	assert.Equal(t, "2024-03-11", FormatDay(current.FertileWindowEnd))
	assert.Equal(t, PhaseFertile, current.Phase)
	assert.False(t, current.Overdue)
	assert.Equal(t, StatusGreen, current.CycleLengthStatus)
	assert.Equal(t, StatusGreen, current.PeriodLengthStatus)
	assert.Equal(t, 28.0, current.AverageCycleLength)
	assert.Equal(t, 28, current.MedianCycleLength)
	assert.Equal(t, 4.0, current.AveragePeriodLength)
}

func TestBuildCurrentCycleFlagsIrregularPattern(t *testing.T) {
	t.Parallel()

	days := []time.Time{
		mustDay(t, "2024-01-01"),
		mustDay(t, "2024-01-21"),
		mustDay(t, "2024-02-27"),
	}

	current := BuildCurrentCycle(days, DefaultPreferences(), mustDay(t, "2024-03-01"))
	assert.Equal(t, StatusRed, current.CycleLengthStatus)
	assert.Equal(t, StatusRed, current.PeriodLengthStatus)
}

func TestBuildCurrentCycleMarksOverdue(t *testing.T) {
	t.Parallel()

	days := syntheticPeriodDays(mustDay(t, "2024-01-01"), 1, 0, 5)
	current := BuildCurrentCycle(days, DefaultPreferences(), mustDay(t, "2024-02-15"))

	assert.Equal(t, 46, current.CurrentCycleDayNumber)
	assert.True(t, current.Overdue)
	assert.Equal(t, -17, current.DaysUntilNextPeriod)
	assert.Equal(t, PhaseUnknown, current.Phase)
}

func TestBuildCurrentCycleFallsBackToLastMenstrualPeriod(t *testing.T) {
	t.Parallel()

	prefs := Preferences{AvgCycleLengthDays: 30, AvgPeriodLengthDays: 5, LastMenstrualPeriodDate: "2024-03-01"}
	current := BuildCurrentCycle(nil, prefs, mustDay(t, "2024-03-03"))

	assert.True(t, current.Known)
	assert.Equal(t, 3, current.CurrentCycleDayNumber)
	assert.Equal(t, PhaseMenstrual, current.Phase)
	assert.Equal(t, "2024-03-31", FormatDay(current.PredictedNextPeriodDate))
	assert.Equal(t, StatusGreen, current.CycleLengthStatus)
}

func TestBuildCurrentCycleWithoutData(t *testing.T) {
	t.Parallel()

	prefs := Preferences{AvgCycleLengthDays: 40, AvgPeriodLengthDays: 2}
	current := BuildCurrentCycle(nil, prefs, mustDay(t, "2024-03-03"))

	assert.False(t, current.Known)
	assert.Equal(t, PhaseUnknown, current.Phase)
	assert.Zero(t, current.CurrentCycleDayNumber)
	assert.Equal(t, StatusRed, current.CycleLengthStatus)
	assert.Equal(t, StatusRed, current.PeriodLengthStatus)
}
