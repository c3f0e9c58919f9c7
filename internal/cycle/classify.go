package cycle

// Status buckets a cycle or period length. It is a heuristic, not a clinical judgment.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

const (
	minNormalCycleLength  = 21
	maxNormalCycleLength  = 35
	minSteadyCycleLength  = 25
	maxSteadyCycleLength  = 32
	minPeriodLength       = 2
	maxPeriodLength       = 8
	minAveragePeriodDays  = 3
	maxAveragePeriodDays  = 7
	variationWarningDays  = 3
	variationCriticalDays = 7
)

func statusRank(status Status) int {
	switch status {
	case StatusRed:
		return 2
	case StatusYellow:
		return 1
	default:
		return 0
	}
}

// WorseStatus returns the more severe of a and b.
func WorseStatus(a Status, b Status) Status {
	if statusRank(b) > statusRank(a) {
		return b
	}
	if a == "" {
		return StatusGreen
	}
	return a
}

// ClassifyCycleLength judges a single cycle.
func ClassifyCycleLength(days int) Status {
	switch {
	case days < minNormalCycleLength || days > maxNormalCycleLength:
		return StatusRed
	case days < minSteadyCycleLength || days > maxSteadyCycleLength:
		return StatusYellow
	default:
		return StatusGreen
	}
}

// ClassifyPeriodLength judges the bleeding duration of a single cycle.
func ClassifyPeriodLength(days int) Status {
	switch {
	case days < minPeriodLength || days > maxPeriodLength:
		return StatusRed
	case days == minPeriodLength || days == maxPeriodLength:
		return StatusYellow
	default:
		return StatusGreen
	}
}

// ClassifyCycle combines both single-cycle judgments. A non-positive cycle
// length means the cycle length is unknown and only the period is judged.
func ClassifyCycle(cycleDays int, periodDays int) Status {
	periodStatus := ClassifyPeriodLength(periodDays)
	if cycleDays <= 0 {
		return periodStatus
	}
	return WorseStatus(ClassifyCycleLength(cycleDays), periodStatus)
}

// ClassifyCycleVariation answers whether the overall pattern across several
// consecutive cycles is regular. It is deliberately coarser than ClassifyCycleLength.
func ClassifyCycleVariation(lengths []int) Status {
	if len(lengths) == 0 {
		return StatusGreen
	}

	average := averageInts(lengths)
	if average < minNormalCycleLength || average > maxNormalCycleLength {
		return StatusRed
	}

	maxDeviation := 0.0
	for _, length := range lengths {
		deviation := float64(length) - average
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > maxDeviation {
			maxDeviation = deviation
		}
	}

	switch {
	case maxDeviation > variationCriticalDays:
		return StatusRed
	case maxDeviation > variationWarningDays:
		return StatusYellow
	default:
		return StatusGreen
	}
}

func ClassifyAverageCycleLength(average float64) Status {
	if average < minNormalCycleLength || average > maxNormalCycleLength {
		return StatusRed
	}
	return StatusGreen
}

// ClassifyAveragePeriodLength uses the stricter bounds applied to averaged or
// preference-supplied period lengths.
func ClassifyAveragePeriodLength(average float64) Status {
	if average < minAveragePeriodDays || average > maxAveragePeriodDays {
		return StatusRed
	}
	return StatusGreen
}
