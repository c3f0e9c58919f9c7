package cycle

import "time"

// maxSyntheticPeriodDays bounds the LMP fallback run.
const maxSyntheticPeriodDays = 31

// CycleSummary describes one reconstructed cycle. EndDate is the last logged
// bleeding day of the cycle's period group.
type CycleSummary struct {
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	CycleLengthDays  int       `json:"cycle_length_days"`
	PeriodLengthDays int       `json:"period_length_days"`
	Status           Status    `json:"status"`
}

// ReconstructHistory rebuilds cycle summaries from period days, newest first.
// With no days it falls back to a run of AvgPeriodLengthDays days (at most
// maxSyntheticPeriodDays) starting at the preferences' last menstrual period,
// when one is set.
func ReconstructHistory(days []time.Time, prefs Preferences) []CycleSummary {
	if len(days) == 0 {
		days = syntheticPeriodFromLMP(prefs)
	}

	groups := newestFirst(GroupConsecutiveDays(days))
	if len(groups) == 0 {
		return []CycleSummary{}
	}

	summaries := make([]CycleSummary, 0, len(groups))
	currentCycleLength := 0
	if len(groups) > 1 {
		currentCycleLength = DaysBetween(groups[1].Start(), groups[0].Start())
	}
	summaries = append(summaries, newCycleSummary(groups[0], currentCycleLength))

	for index := 0; index+1 < len(groups); index++ {
		newer := groups[index]
		older := groups[index+1]
		summaries = append(summaries, newCycleSummary(older, DaysBetween(older.Start(), newer.Start())))
	}

	return summaries
}

func newCycleSummary(group PeriodGroup, cycleLength int) CycleSummary {
	return CycleSummary{
		StartDate:        group.Start(),
		EndDate:          group.End(),
		CycleLengthDays:  cycleLength,
		PeriodLengthDays: group.Len(),
		Status:           ClassifyCycle(cycleLength, group.Len()),
	}
}

func syntheticPeriodFromLMP(prefs Preferences) []time.Time {
	lmp, ok := prefs.lastMenstrualPeriod(nil)
	if !ok {
		return nil
	}
	length := min(prefs.periodLength(), maxSyntheticPeriodDays)
	days := make([]time.Time, 0, length)
	for offset := 0; offset < length; offset++ {
		days = append(days, AddDays(lmp, offset))
	}
	return days
}
