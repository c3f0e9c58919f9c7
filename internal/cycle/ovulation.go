package cycle

import "time"

const (
	fertileDaysBeforeOvulation = 5
	fertileDaysAfterOvulation  = 1
	minOvulationDayOffset      = 14
)

type FertileWindow struct {
	OvulationDayOffset int       `json:"ovulation_day_offset"`
	OvulationDate      time.Time `json:"ovulation_date"`
	FertileWindowStart time.Time `json:"fertile_window_start"`
	FertileWindowEnd   time.Time `json:"fertile_window_end"`
}

// OvulationDayOffset returns the 1-indexed cycle day of ovulation assuming a
// fourteen-day luteal phase, never earlier than day fourteen.
func OvulationDayOffset(cycleLength int) int {
	offset := cycleLength - LutealPhaseDays
	if offset < minOvulationDayOffset {
		return minOvulationDayOffset
	}
	return offset
}

// FertileWindowOpeningDay returns the 1-indexed cycle day on which the
// fertile window opens.
func FertileWindowOpeningDay(cycleLength int) int {
	return OvulationDayOffset(cycleLength) - fertileDaysBeforeOvulation
}

// PredictOvulation projects ovulation and the fertile window for the cycle
// starting on reference.
func PredictOvulation(reference time.Time, cycleLength int) FertileWindow {
	offset := OvulationDayOffset(cycleLength)
	ovulation := AddDays(DayOf(reference), offset-1)
	return FertileWindow{
		OvulationDayOffset: offset,
		OvulationDate:      ovulation,
		FertileWindowStart: AddDays(ovulation, -fertileDaysBeforeOvulation),
		FertileWindowEnd:   AddDays(ovulation, fertileDaysAfterOvulation),
	}
}

func (w FertileWindow) Range() DayRange {
	return DayRange{Start: w.FertileWindowStart, End: w.FertileWindowEnd}
}
