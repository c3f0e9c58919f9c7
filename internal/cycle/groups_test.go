package cycle

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGroupDateStringsSplitsOnAnyGap(t *testing.T) {
	groups := GroupDateStrings([]string{"2024-01-01", "2024-01-02", "2024-01-04"}, nil)

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, groups[0].Strings())
	assert.Equal(t, []string{"2024-01-04"}, groups[1].Strings())
}

func TestGroupDateStringsEdgeCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  []string
		want [][]string
	}{
		{name: "empty", raw: nil, want: nil},
		{name: "single", raw: []string{"2024-05-05"}, want: [][]string{{"2024-05-05"}}},
		{
			name: "duplicates collapse",
			raw:  []string{"2024-05-06", "2024-05-05", "2024-05-06"},
			want: [][]string{{"2024-05-05", "2024-05-06"}},
		},
		{
			name: "month boundary is consecutive",
			raw:  []string{"2024-02-28", "2024-02-29", "2024-03-01"},
			want: [][]string{{"2024-02-28", "2024-02-29", "2024-03-01"}},
		},
		{
			name: "two day gap starts a new group",
			raw:  []string{"2024-05-01", "2024-05-03"},
			want: [][]string{{"2024-05-01"}, {"2024-05-03"}},
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			groups := GroupDateStrings(testCase.raw, nil)
			got := make([][]string, 0, len(groups))
			for _, group := range groups {
				got = append(got, group.Strings())
			}
			if testCase.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestGroupConsecutiveDaysPartitionsInputInAnyOrder(t *testing.T) {
	start := time.Date(2023, time.November, 20, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 0)
	for offset := 0; offset < 120; offset++ {
		if offset%7 == 3 || offset%11 == 0 {
			continue
		}
		days = append(days, AddDays(start, offset))
	}
	days = append(days, days[4], days[9])

	reference := GroupConsecutiveDays(days)

	random := rand.New(rand.NewSource(42))
	for round := 0; round < 10; round++ {
		shuffled := append([]time.Time(nil), days...)
		random.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		require.Equal(t, reference, GroupConsecutiveDays(shuffled))
	}

	seen := make(map[string]int)
	for _, group := range reference {
		require.NotEmpty(t, group)
		for index, day := range group {
			seen[FormatDay(day)]++
			if index > 0 {
				assert.Equal(t, 1, DaysBetween(group[index-1], day))
			}
		}
	}
	for _, day := range days {
		assert.Equal(t, 1, seen[FormatDay(day)], "day %s must be in exactly one group", FormatDay(day))
	}
	for index := 1; index < len(reference); index++ {
		assert.Greater(t, DaysBetween(reference[index-1].End(), reference[index].Start()), 1)
	}
}

func TestGroupDateStringsSkipsMalformedDatesWithWarning(t *testing.T) {
	core, recorded := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	groups := GroupDateStrings([]string{"2024-01-01", "not-a-date", "2024-13-01", "2024-01-02"}, logger)

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, groups[0].Strings())
	assert.Equal(t, 2, recorded.FilterMessage("skipping malformed period date").Len())
}

func TestMonthGridRangeIsSundayAligned(t *testing.T) {
	month, err := ParseMonth("2024-01")
	require.NoError(t, err)

	start, end := month.GridRange()
	assert.Equal(t, "2023-12-31", FormatDay(start))
	assert.Equal(t, "2024-02-03", FormatDay(end))

	_, err = ParseMonth("2024-1x")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
