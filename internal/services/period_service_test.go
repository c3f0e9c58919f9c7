package services

import (
	"errors"
	"testing"
)

func TestPeriodServiceCreateListDelete(t *testing.T) {
	stack := newTestStack(t, fixedClock("2024-03-05T10:00:00Z"))
	user := stack.registerUser(t, "owner@example.com")

	entry, err := stack.periods.Create(user.ID, "2024-02-01", "2024-02-05", "")
	if err != nil {
		t.Fatalf("create period: %v", err)
	}
	single, err := stack.periods.Create(user.ID, "2024-03-01", "", "")
	if err != nil {
		t.Fatalf("create single-day period: %v", err)
	}
	if !single.StartDate.Equal(single.EndDate) {
		t.Fatalf("expected single-day period, got %v..%v", single.StartDate, single.EndDate)
	}

	ranges, err := stack.periods.RecordedRanges(user.ID)
	if err != nil {
		t.Fatalf("recorded ranges: %v", err)
	}
	if len(ranges) != 2 || ranges[1].Len() != 5 {
		t.Fatalf("unexpected recorded ranges: %+v", ranges)
	}

	other := stack.registerUser(t, "other@example.com")
	if err := stack.periods.Delete(other.ID, entry.ID); !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound for another user, got %v", err)
	}
	if err := stack.periods.Delete(user.ID, entry.ID); err != nil {
		t.Fatalf("delete period: %v", err)
	}
}

func TestPeriodServiceValidation(t *testing.T) {
	stack := newTestStack(t, fixedClock("2024-03-05T10:00:00Z"))
	user := stack.registerUser(t, "owner@example.com")

	cases := []struct {
		start string
		end   string
		want  error
	}{
		{start: "2024-02-05", end: "2024-02-01", want: ErrPeriodRangeInvalid},
		{start: "2024-01-01", end: "2024-02-15", want: ErrPeriodRangeInvalid},
		{start: "2024-03-06", end: "2024-03-08", want: ErrPeriodStartInFuture},
		{start: "yesterday", end: "", want: ErrInvalidDay},
	}
	for _, testCase := range cases {
		if _, err := stack.periods.Create(user.ID, testCase.start, testCase.end, ""); !errors.Is(err, testCase.want) {
			t.Fatalf("Create(%s, %s) error = %v, want %v", testCase.start, testCase.end, err, testCase.want)
		}
	}
}
