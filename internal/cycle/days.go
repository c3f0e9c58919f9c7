package cycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

var ErrInvalidMonth = errors.New("invalid month")

// ParseDay parses a YYYY-MM-DD calendar day. The result is midnight UTC so that
// day arithmetic never crosses a DST boundary.
func ParseDay(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DayLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", raw, err)
	}
	return parsed, nil
}

func FormatDay(day time.Time) string {
	return day.Format(DayLayout)
}

// DayOf truncates value to its calendar day as seen in value's own location.
func DayOf(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func AddDays(day time.Time, days int) time.Time {
	return day.AddDate(0, 0, days)
}

// DaysBetween returns to minus from in whole calendar days.
func DaysBetween(from time.Time, to time.Time) int {
	return int(DayOf(to).Sub(DayOf(from)).Hours() / 24)
}

func sameDay(a time.Time, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

func betweenDaysInclusive(day time.Time, start time.Time, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

// ParseDays parses every entry of raw, skipping malformed ones with a warning.
func ParseDays(raw []string, logger *zap.Logger) []time.Time {
	if logger == nil {
		logger = zap.NewNop()
	}
	days := make([]time.Time, 0, len(raw))
	for _, value := range raw {
		day, err := ParseDay(value)
		if err != nil {
			logger.Warn("skipping malformed period date", zap.String("value", value), zap.Error(err))
			continue
		}
		days = append(days, day)
	}
	return days
}

// Month is a calendar month a calendar view is rendered for.
type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(raw string) (Month, error) {
	parsed, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, raw)
	}
	return Month{Year: parsed.Year(), Month: parsed.Month()}, nil
}

func MonthOf(day time.Time) Month {
	return Month{Year: day.Year(), Month: day.Month()}
}

func (m Month) String() string {
	return m.Start().Format(MonthLayout)
}

func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, -1)
}

// GridRange returns the first and last day of the Sunday-aligned calendar grid
// that displays the month, including the overflow days of adjacent months.
func (m Month) GridRange() (time.Time, time.Time) {
	start := m.Start()
	end := m.End()
	gridStart := start.AddDate(0, 0, -int(start.Weekday()))
	gridEnd := end.AddDate(0, 0, 6-int(end.Weekday()))
	return gridStart, gridEnd
}

// DayRange is an inclusive span of calendar days.
type DayRange struct {
	Start time.Time
	End   time.Time
}

func (r DayRange) Contains(day time.Time) bool {
	return betweenDaysInclusive(day, r.Start, r.End)
}

func (r DayRange) Overlaps(other DayRange) bool {
	return !r.End.Before(other.Start) && !other.End.Before(r.Start)
}

// Intersect clips r to other; ok is false when they share no day.
func (r DayRange) Intersect(other DayRange) (DayRange, bool) {
	if !r.Overlaps(other) {
		return DayRange{}, false
	}
	clipped := r
	if other.Start.After(clipped.Start) {
		clipped.Start = other.Start
	}
	if other.End.Before(clipped.End) {
		clipped.End = other.End
	}
	return clipped, true
}

func (r DayRange) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}
