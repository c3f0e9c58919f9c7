package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/cycletrack/internal/models"
)

const MaxDayNotesLength = 2000

var ErrInvalidDayFlow = errors.New("invalid day flow")

type DayEntryInput struct {
	IsPeriod   bool
	Flow       string
	Notes      string
	SymptomIDs []uint
}

// NormalizeDayEntryInput defaults an empty flow and only lets spotting
// through on days not marked as period.
func NormalizeDayEntryInput(input DayEntryInput) (DayEntryInput, error) {
	input.Flow = strings.ToLower(strings.TrimSpace(input.Flow))
	if input.Flow == "" {
		input.Flow = models.FlowNone
	}
	if !models.IsValidFlow(input.Flow) {
		return input, ErrInvalidDayFlow
	}
	if !input.IsPeriod && input.Flow != models.FlowSpotting {
		input.Flow = models.FlowNone
	}
	if input.SymptomIDs == nil {
		input.SymptomIDs = []uint{}
	}
	input.Notes = TrimDayNotes(strings.TrimSpace(input.Notes))
	return input, nil
}

func TrimDayNotes(value string) string {
	runes := []rune(value)
	if len(runes) <= MaxDayNotesLength {
		return value
	}
	return string(runes[:MaxDayNotesLength])
}
