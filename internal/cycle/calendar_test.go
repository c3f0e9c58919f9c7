package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func januaryPeriodDays(t *testing.T) []time.Time {
	t.Helper()
	return syntheticPeriodDays(mustDay(t, "2024-01-01"), 1, 0, 5)
}

func TestAnnotationPrecedenceOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"user_period", "fertility", "predicted_period", "recorded_period"},
		AnnotationPrecedence(),
	)
}

func TestBuildCalendarFromSinglePeriod(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil)
	periodDates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}

	calendar, err := engine.Calendar(periodDates, nil, DefaultPreferences(), "2024-01", mustDay(t, "2024-01-20"))
	require.NoError(t, err)

	for _, day := range periodDates {
		assert.Equal(t, KindUserPeriod, calendar[day].Kind, day)
	}
	for _, day := range []string{"2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12", "2024-01-13", "2024-01-15"} {
		assert.Equal(t, KindFertile, calendar[day].Kind, day)
		assert.Equal(t, ConfidenceHigh, calendar[day].Confidence, day)
	}
	assert.Equal(t, KindOvulation, calendar["2024-01-14"].Kind)
	assert.Equal(t, 1.0, calendar["2024-01-14"].Opacity)

	for _, day := range []string{"2024-01-29", "2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"} {
		assert.Equal(t, KindPredictedPeriod, calendar[day].Kind, day)
	}

	assert.NotContains(t, calendar, "2024-01-08")
	assert.NotContains(t, calendar, "2024-02-03")
	assert.Len(t, calendar, 17)
}

func TestBuildCalendarUserPeriodBeatsFertileWindow(t *testing.T) {
	t.Parallel()

	month, err := ParseMonth("2024-01")
	require.NoError(t, err)

	days := append(januaryPeriodDays(t), mustDay(t, "2024-01-12"))
	predictions := BuildPredictionHistory(januaryPeriodDays(t), DefaultPreferences(), mustDay(t, "2024-01-10"))
	require.NotNil(t, predictions.Latest)
	require.True(t, predictions.Latest.Window().Contains(mustDay(t, "2024-01-12")))

	calendar := BuildCalendar(CalendarInput{
		Days:        days,
		Preferences: DefaultPreferences(),
		Month:       month,
		Predictions: predictions,
	})

	assert.Equal(t, KindUserPeriod, calendar["2024-01-12"].Kind)
	assert.Equal(t, KindFertile, calendar["2024-01-11"].Kind)
}

func TestBuildCalendarFertileWindowBeatsPredictedPeriod(t *testing.T) {
	t.Parallel()

	month, err := ParseMonth("2024-01")
	require.NoError(t, err)

	overlapping := FertilePrediction{
		BasedOnDate:        mustDay(t, "2024-01-01"),
		ComputedAt:         mustDay(t, "2024-01-01"),
		OvulationDate:      mustDay(t, "2024-02-02"),
		FertileWindowStart: mustDay(t, "2024-01-28"),
		FertileWindowEnd:   mustDay(t, "2024-02-03"),
		CycleLengthUsed:    28,
		Confidence:         ConfidenceHigh,
		Source:             SourceLatestPeriod,
	}

	calendar := BuildCalendar(CalendarInput{
		Days:        januaryPeriodDays(t),
		Preferences: DefaultPreferences(),
		Month:       month,
		Predictions: PredictionHistory{Latest: &overlapping, All: []FertilePrediction{overlapping}},
	})

	assert.Equal(t, KindFertile, calendar["2024-01-30"].Kind)
	assert.Equal(t, KindOvulation, calendar["2024-02-02"].Kind)
	for _, annotation := range calendar {
		assert.NotEqual(t, KindPredictedPeriod, annotation.Kind)
	}
}

func TestBuildCalendarFirstPredictionClaimsSharedDays(t *testing.T) {
	t.Parallel()

	month, err := ParseMonth("2024-01")
	require.NoError(t, err)

	latest := FertilePrediction{
		OvulationDate:      mustDay(t, "2024-01-14"),
		FertileWindowStart: mustDay(t, "2024-01-09"),
		FertileWindowEnd:   mustDay(t, "2024-01-15"),
		Confidence:         ConfidenceHigh,
	}
	older := FertilePrediction{
		OvulationDate:      mustDay(t, "2024-01-16"),
		FertileWindowStart: mustDay(t, "2024-01-11"),
		FertileWindowEnd:   mustDay(t, "2024-01-17"),
		Confidence:         ConfidenceLow,
	}

	calendar := BuildCalendar(CalendarInput{
		Days:        januaryPeriodDays(t),
		Preferences: DefaultPreferences(),
		Month:       month,
		Predictions: PredictionHistory{Latest: &latest, All: []FertilePrediction{latest, older}},
	})

	assert.Equal(t, KindOvulation, calendar["2024-01-14"].Kind)
	assert.Equal(t, ConfidenceHigh, calendar["2024-01-15"].Confidence)
	assert.Equal(t, KindOvulation, calendar["2024-01-16"].Kind)
	assert.Equal(t, ConfidenceLow, calendar["2024-01-16"].Confidence)
	assert.InDelta(t, lowConfidenceOpacity*nonLatestOpacityFactor, calendar["2024-01-17"].Opacity, 1e-9)
}

func TestBuildCalendarRecordedPeriodHasLowestPriority(t *testing.T) {
	t.Parallel()

	month, err := ParseMonth("2024-01")
	require.NoError(t, err)

	recorded := []DayRange{
		{Start: mustDay(t, "2024-01-04"), End: mustDay(t, "2024-01-07")},
		{Start: mustDay(t, "2024-01-20"), End: mustDay(t, "2024-01-22")},
		{Start: mustDay(t, "2024-01-30"), End: mustDay(t, "2024-01-30")},
	}

	calendar := BuildCalendar(CalendarInput{
		Days:            januaryPeriodDays(t),
		RecordedPeriods: recorded,
		Preferences:     DefaultPreferences(),
		Month:           month,
	})

	assert.Equal(t, KindUserPeriod, calendar["2024-01-04"].Kind)
	assert.Equal(t, KindRecordedPeriod, calendar["2024-01-06"].Kind)
	assert.Equal(t, KindRecordedPeriod, calendar["2024-01-21"].Kind)
	assert.Equal(t, KindPredictedPeriod, calendar["2024-01-30"].Kind)
}

func TestBuildCalendarWithoutHistoryIsEmpty(t *testing.T) {
	t.Parallel()

	calendar, err := NewEngine(nil).Calendar(nil, nil, DefaultPreferences(), "2024-06", mustDay(t, "2024-06-10"))
	require.NoError(t, err)
	assert.NotNil(t, calendar)
	assert.Empty(t, calendar)
}

func TestBuildCalendarOnlyCoversMonthGrid(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil)
	days := make([]string, 0)
	for _, day := range syntheticPeriodDays(mustDay(t, "2023-06-01"), 12, 28, 5) {
		days = append(days, FormatDay(day))
	}

	calendar, err := engine.Calendar(days, nil, DefaultPreferences(), "2023-09", mustDay(t, "2024-06-01"))
	require.NoError(t, err)
	require.NotEmpty(t, calendar)

	month, _ := ParseMonth("2023-09")
	gridStart, gridEnd := month.GridRange()
	for key := range calendar {
		day := mustDay(t, key)
		assert.False(t, day.Before(gridStart), key)
		assert.False(t, day.After(gridEnd), key)
	}
}

func TestEngineCalendarIsIdempotent(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil)
	days := []string{"2024-02-01", "2024-02-02", "2024-02-03", "2024-02-29", "2024-03-01", "garbage"}
	prefs := Preferences{AvgCycleLengthDays: 29, AvgPeriodLengthDays: 4, LastMenstrualPeriodDate: "2024-01-03"}
	recorded := []DayRange{{Start: mustDay(t, "2024-01-03"), End: mustDay(t, "2024-01-06")}}
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	first, err := engine.Calendar(days, recorded, prefs, "2024-03", now)
	require.NoError(t, err)
	second, err := engine.Calendar(days, recorded, prefs, "2024-03", now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngineCalendarRejectsInvalidMonth(t *testing.T) {
	t.Parallel()

	_, err := NewEngine(nil).Calendar([]string{"2024-01-01"}, nil, DefaultPreferences(), "January", time.Now())
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestEngineEmptyInputsDegradeGracefully(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil)
	now := mustDay(t, "2024-05-01")

	assert.Empty(t, engine.Groups(nil))
	assert.Empty(t, engine.History(nil, DefaultPreferences()))

	predictions := engine.Predictions(nil, DefaultPreferences(), now)
	assert.Nil(t, predictions.Latest)
	assert.Empty(t, predictions.All)

	current := engine.CurrentCycle(nil, DefaultPreferences(), now)
	assert.False(t, current.Known)
	assert.Equal(t, PhaseUnknown, current.Phase)
}

func TestBuildCalendarAnchorsPredictedPeriodsOnPastGroups(t *testing.T) {
	t.Parallel()

	month, err := ParseMonth("2024-01")
	require.NoError(t, err)

	days := append(januaryPeriodDays(t), syntheticPeriodDays(mustDay(t, "2024-01-20"), 1, 0, 3)...)
	input := CalendarInput{
		Days:        days,
		Preferences: DefaultPreferences(),
		Month:       month,
		Now:         mustDay(t, "2024-01-10"),
	}

	calendar := BuildCalendar(input)
	for _, day := range []string{"2024-01-29", "2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"} {
		assert.Equal(t, KindPredictedPeriod, calendar[day].Kind, day)
	}
	assert.Equal(t, KindUserPeriod, calendar["2024-01-21"].Kind)

	input.Now = time.Time{}
	unfiltered := BuildCalendar(input)
	assert.NotContains(t, unfiltered, "2024-01-29")
}

func TestBuildCalendarClipsLongRunsToMonthGrid(t *testing.T) {
	t.Parallel()

	month, err := ParseMonth("2024-03")
	require.NoError(t, err)

	calendar := BuildCalendar(CalendarInput{
		Preferences: Preferences{AvgPeriodLengthDays: 1 << 30, LastMenstrualPeriodDate: "2024-03-10"},
		Month:       month,
	})

	assert.Len(t, calendar, 28)
	assert.NotContains(t, calendar, "2024-03-09")
	assert.Equal(t, KindRecordedPeriod, calendar["2024-03-10"].Kind)
	assert.Equal(t, KindRecordedPeriod, calendar["2024-04-06"].Kind)
	assert.NotContains(t, calendar, "2024-04-07")
}
