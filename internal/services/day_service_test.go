package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/terraincognita07/cycletrack/internal/models"
)

func TestDayServiceUpsertGetAndDelete(t *testing.T) {
	stack := newTestStack(t, fixedClock("2024-03-05T10:00:00Z"))
	user := stack.registerUser(t, "owner@example.com")

	entry, err := stack.days.UpsertDay(user.ID, "2024-03-01", DayEntryInput{IsPeriod: true, Flow: "Heavy", Notes: "  cramps  "})
	if err != nil {
		t.Fatalf("upsert day: %v", err)
	}
	if entry.Flow != models.FlowHeavy || entry.Notes != "cramps" {
		t.Fatalf("expected normalized input, got flow=%q notes=%q", entry.Flow, entry.Notes)
	}

	updated, err := stack.days.UpsertDay(user.ID, "2024-03-01", DayEntryInput{IsPeriod: false, Flow: models.FlowHeavy})
	if err != nil {
		t.Fatalf("update day: %v", err)
	}
	if updated.ID != entry.ID {
		t.Fatalf("expected update in place, got id %d then %d", entry.ID, updated.ID)
	}
	if updated.Flow != models.FlowNone {
		t.Fatalf("expected flow reset on non-period day, got %q", updated.Flow)
	}

	fetched, err := stack.days.GetDay(user.ID, "2024-03-01")
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if fetched.IsPeriod {
		t.Fatal("expected stored day to no longer be a period day")
	}

	empty, err := stack.days.GetDay(user.ID, "2024-02-01")
	if err != nil {
		t.Fatalf("get empty day: %v", err)
	}
	if empty.ID != 0 || DayHasData(empty) {
		t.Fatalf("expected empty placeholder day, got %+v", empty)
	}

	if err := stack.days.DeleteDay(user.ID, "2024-03-01"); err != nil {
		t.Fatalf("delete day: %v", err)
	}
	if err := stack.days.DeleteDay(user.ID, "2024-03-01"); !errors.Is(err, ErrDayNotFound) {
		t.Fatalf("expected ErrDayNotFound, got %v", err)
	}
}

func TestDayServiceRejectsInvalidInput(t *testing.T) {
	stack := newTestStack(t, fixedClock("2024-03-05T23:30:00Z"))
	user := stack.registerUser(t, "owner@example.com")

	cases := []struct {
		day   string
		input DayEntryInput
		want  error
	}{
		{day: "2024-13-01", input: DayEntryInput{IsPeriod: true}, want: ErrInvalidDay},
		{day: "2024-03-06", input: DayEntryInput{IsPeriod: true}, want: ErrDayInFuture},
		{day: "2024-03-04", input: DayEntryInput{IsPeriod: true, Flow: "torrential"}, want: ErrInvalidDayFlow},
		{day: "2024-03-04", input: DayEntryInput{IsPeriod: true, SymptomIDs: []uint{9999}}, want: ErrInvalidSymptomID},
	}
	for _, testCase := range cases {
		if _, err := stack.days.UpsertDay(user.ID, testCase.day, testCase.input); !errors.Is(err, testCase.want) {
			t.Fatalf("UpsertDay(%s) error = %v, want %v", testCase.day, err, testCase.want)
		}
	}
}

func TestDayServicePeriodDatesAndRange(t *testing.T) {
	stack := newTestStack(t, fixedClock("2024-03-05T10:00:00Z"))
	user := stack.registerUser(t, "owner@example.com")
	other := stack.registerUser(t, "other@example.com")

	stack.logPeriod(t, user.ID, "2024-02-03", "2024-02-01", "2024-02-02")
	stack.logPeriod(t, other.ID, "2024-02-10")
	if _, err := stack.days.UpsertDay(user.ID, "2024-02-15", DayEntryInput{Notes: "headache"}); err != nil {
		t.Fatalf("log note day: %v", err)
	}

	dates, err := stack.days.PeriodDates(user.ID)
	if err != nil {
		t.Fatalf("period dates: %v", err)
	}
	if want := []string{"2024-02-01", "2024-02-02", "2024-02-03"}; !reflect.DeepEqual(dates, want) {
		t.Fatalf("PeriodDates() = %v, want %v", dates, want)
	}

	logs, err := stack.days.ListLogs(user.ID, "2024-02-02", "2024-02-15")
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs in range, got %d", len(logs))
	}

	if _, err := stack.days.UpsertDay(user.ID, "2024-02-15", DayEntryInput{}); err != nil {
		t.Fatalf("clear note day: %v", err)
	}
	logs, err = stack.days.ListLogs(user.ID, "2024-02-02", "2024-02-15")
	if err != nil {
		t.Fatalf("list logs after clearing: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected cleared day to be skipped, got %d logs", len(logs))
	}

	if _, err := stack.days.ListLogs(user.ID, "2024-02-10", "2024-02-01"); !errors.Is(err, ErrDayRange) {
		t.Fatalf("expected ErrDayRange, got %v", err)
	}
}

func TestNormalizeDayEntryInputTrimsNotes(t *testing.T) {
	long := make([]rune, MaxDayNotesLength+10)
	for index := range long {
		long[index] = 'ж'
	}
	input, err := NormalizeDayEntryInput(DayEntryInput{Notes: string(long), Flow: models.FlowSpotting})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got := len([]rune(input.Notes)); got != MaxDayNotesLength {
		t.Fatalf("expected notes trimmed to %d runes, got %d", MaxDayNotesLength, got)
	}
	if input.Flow != models.FlowSpotting {
		t.Fatalf("expected spotting to survive on non-period day, got %q", input.Flow)
	}
}
