package cycle

import "time"

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseFertile    = "fertile"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
	PhaseUnknown    = "unknown"
)

const recentCycleWindow = 6

// CurrentCycle is the rolling summary of the cycle that contains today.
type CurrentCycle struct {
	Known                   bool      `json:"known"`
	CycleStart              time.Time `json:"cycle_start"`
	CurrentCycleDayNumber   int       `json:"current_cycle_day_number"`
	PredictedNextPeriodDate time.Time `json:"predicted_next_period_date"`
	DaysUntilNextPeriod     int       `json:"days_until_next_period"`
	Overdue                 bool      `json:"overdue"`
	OvulationDate           time.Time `json:"ovulation_date"`
	FertileWindowStart      time.Time `json:"fertile_window_start"`
	FertileWindowEnd        time.Time `json:"fertile_window_end"`
	Phase                   string    `json:"phase"`
	CycleLengthStatus       Status    `json:"cycle_length_status"`
	PeriodLengthStatus      Status    `json:"period_length_status"`
	AverageCycleLength      float64   `json:"average_cycle_length"`
	MedianCycleLength       int       `json:"median_cycle_length"`
	AveragePeriodLength     float64   `json:"average_period_length"`
}

// BuildCurrentCycle anchors the current cycle on the most recent period start
// that is not after now, falling back to the last menstrual period.
func BuildCurrentCycle(days []time.Time, prefs Preferences, now time.Time) CurrentCycle {
	today := DayOf(now)
	groups := pastGroups(GroupConsecutiveDays(days), today)
	cycleLength := prefs.cycleLength()

	current := CurrentCycle{Phase: PhaseUnknown}

	lengths := startLengths(groups)
	current.CycleLengthStatus = ClassifyAverageCycleLength(float64(cycleLength))
	if len(lengths) > 0 {
		current.CycleLengthStatus = ClassifyCycleVariation(lengths)
		recent := tailInts(lengths, recentCycleWindow)
		current.AverageCycleLength = averageInts(recent)
		current.MedianCycleLength = medianInt(recent)
	}

	current.PeriodLengthStatus = ClassifyAveragePeriodLength(float64(prefs.periodLength()))
	if len(groups) > 0 {
		periodLengths := make([]int, 0, recentCycleWindow)
		for _, group := range groups {
			periodLengths = append(periodLengths, group.Len())
		}
		current.AveragePeriodLength = averageInts(tailInts(periodLengths, recentCycleWindow))
		current.PeriodLengthStatus = ClassifyAveragePeriodLength(current.AveragePeriodLength)
	}

	var start time.Time
	if len(groups) > 0 {
		start = groups[len(groups)-1].Start()
	}
	if lmp, ok := prefs.lastMenstrualPeriod(nil); ok && !lmp.After(today) && lmp.After(start) {
		start = lmp
	}
	if start.IsZero() {
		return current
	}

	window := PredictOvulation(start, cycleLength)
	current.Known = true
	current.CycleStart = start
	current.CurrentCycleDayNumber = DaysBetween(start, today) + 1
	current.PredictedNextPeriodDate = AddDays(start, cycleLength)
	current.DaysUntilNextPeriod = DaysBetween(today, current.PredictedNextPeriodDate)
	current.Overdue = current.CurrentCycleDayNumber > cycleLength
	current.OvulationDate = window.OvulationDate
	current.FertileWindowStart = window.FertileWindowStart
	current.FertileWindowEnd = window.FertileWindowEnd
	current.Phase = detectPhase(current, days, prefs.periodLength(), today)
	return current
}

func detectPhase(current CurrentCycle, days []time.Time, periodLength int, today time.Time) string {
	if containsDay(days, today) {
		return PhaseMenstrual
	}
	periodEnd := AddDays(current.CycleStart, periodLength-1)
	if betweenDaysInclusive(today, current.CycleStart, periodEnd) {
		return PhaseMenstrual
	}
	if current.Overdue {
		return PhaseUnknown
	}

	switch {
	case sameDay(today, current.OvulationDate):
		return PhaseOvulation
	case betweenDaysInclusive(today, current.FertileWindowStart, current.FertileWindowEnd):
		return PhaseFertile
	case today.Before(current.OvulationDate):
		return PhaseFollicular
	default:
		return PhaseLuteal
	}
}
