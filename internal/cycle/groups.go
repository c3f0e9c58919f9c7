package cycle

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// PeriodGroup is a maximal run of consecutive period days, oldest first.
type PeriodGroup []time.Time

func (g PeriodGroup) Start() time.Time {
	if len(g) == 0 {
		return time.Time{}
	}
	return g[0]
}

func (g PeriodGroup) End() time.Time {
	if len(g) == 0 {
		return time.Time{}
	}
	return g[len(g)-1]
}

func (g PeriodGroup) Len() int {
	return len(g)
}

func (g PeriodGroup) Contains(day time.Time) bool {
	return len(g) > 0 && betweenDaysInclusive(DayOf(day), g.Start(), g.End())
}

func (g PeriodGroup) Strings() []string {
	values := make([]string, 0, len(g))
	for _, day := range g {
		values = append(values, FormatDay(day))
	}
	return values
}

// GroupConsecutiveDays deduplicates and sorts days, then splits them into runs
// where each day is exactly one calendar day after the previous one.
func GroupConsecutiveDays(days []time.Time) []PeriodGroup {
	sorted := uniqueSortedDays(days)
	if len(sorted) == 0 {
		return nil
	}

	groups := make([]PeriodGroup, 0)
	current := PeriodGroup{sorted[0]}
	for _, day := range sorted[1:] {
		if DaysBetween(current.End(), day) == 1 {
			current = append(current, day)
			continue
		}
		groups = append(groups, current)
		current = PeriodGroup{day}
	}
	return append(groups, current)
}

func GroupDateStrings(raw []string, logger *zap.Logger) []PeriodGroup {
	return GroupConsecutiveDays(ParseDays(raw, logger))
}

func uniqueSortedDays(days []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(days))
	unique := make([]time.Time, 0, len(days))
	for _, value := range days {
		day := DayOf(value)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		unique = append(unique, day)
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Before(unique[j])
	})
	return unique
}

func newestFirst(groups []PeriodGroup) []PeriodGroup {
	reversed := make([]PeriodGroup, len(groups))
	for index, group := range groups {
		reversed[len(groups)-1-index] = group
	}
	return reversed
}

func containsDay(days []time.Time, needle time.Time) bool {
	for _, day := range days {
		if sameDay(day, needle) {
			return true
		}
	}
	return false
}

func startLengths(groups []PeriodGroup) []int {
	if len(groups) < 2 {
		return nil
	}
	lengths := make([]int, 0, len(groups)-1)
	for index := 1; index < len(groups); index++ {
		lengths = append(lengths, DaysBetween(groups[index-1].Start(), groups[index].Start()))
	}
	return lengths
}
