package api

import (
	"time"

	"github.com/terraincognita07/cycletrack/internal/cycle"
	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/services"
)

func formatOptionalDay(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return cycle.FormatDay(value)
}

type userResponse struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	DisplayName        string `json:"display_name"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:                 user.ID,
		Email:              user.Email,
		DisplayName:        user.DisplayName,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	}
}

type dayResponse struct {
	Date       string `json:"date"`
	IsPeriod   bool   `json:"is_period"`
	Flow       string `json:"flow"`
	SymptomIDs []uint `json:"symptom_ids"`
	Notes      string `json:"notes"`
}

func newDayResponse(entry models.DailyLog) dayResponse {
	symptomIDs := entry.SymptomIDs
	if symptomIDs == nil {
		symptomIDs = []uint{}
	}
	return dayResponse{
		Date:       cycle.FormatDay(entry.Date),
		IsPeriod:   entry.IsPeriod,
		Flow:       entry.Flow,
		SymptomIDs: symptomIDs,
		Notes:      entry.Notes,
	}
}

type periodResponse struct {
	ID        uint   `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
}

func newPeriodResponse(entry models.PeriodEntry) periodResponse {
	return periodResponse{
		ID:        entry.ID,
		StartDate: cycle.FormatDay(entry.StartDate),
		EndDate:   cycle.FormatDay(entry.EndDate),
		Notes:     entry.Notes,
	}
}

type symptomResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	IsBuiltin bool   `json:"is_builtin"`
}

func newSymptomResponse(symptom models.SymptomType) symptomResponse {
	return symptomResponse{
		ID:        symptom.ID,
		Name:      symptom.Name,
		Icon:      symptom.Icon,
		Color:     symptom.Color,
		IsBuiltin: symptom.IsBuiltin,
	}
}

type cycleSettingsResponse struct {
	CycleLength     int    `json:"cycle_length"`
	PeriodLength    int    `json:"period_length"`
	LastPeriodStart string `json:"last_period_start,omitempty"`
}

func newCycleSettingsResponse(settings services.CycleSettings) cycleSettingsResponse {
	response := cycleSettingsResponse{
		CycleLength:  settings.CycleLength,
		PeriodLength: settings.PeriodLength,
	}
	if settings.LastPeriodStart != nil {
		response.LastPeriodStart = cycle.FormatDay(*settings.LastPeriodStart)
	}
	return response
}

type cycleSummaryResponse struct {
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	CycleLengthDays  int          `json:"cycle_length_days"`
	PeriodLengthDays int          `json:"period_length_days"`
	Status           cycle.Status `json:"status"`
}

func newHistoryResponse(history []cycle.CycleSummary) []cycleSummaryResponse {
	response := make([]cycleSummaryResponse, 0, len(history))
	for _, summary := range history {
		response = append(response, cycleSummaryResponse{
			StartDate:        cycle.FormatDay(summary.StartDate),
			EndDate:          cycle.FormatDay(summary.EndDate),
			CycleLengthDays:  summary.CycleLengthDays,
			PeriodLengthDays: summary.PeriodLengthDays,
			Status:           summary.Status,
		})
	}
	return response
}

type predictionResponse struct {
	BasedOnDate        string                 `json:"based_on_date"`
	ComputedAt         string                 `json:"computed_at"`
	OvulationDate      string                 `json:"ovulation_date"`
	FertileWindowStart string                 `json:"fertile_window_start"`
	FertileWindowEnd   string                 `json:"fertile_window_end"`
	CycleLengthUsed    int                    `json:"cycle_length_used"`
	Confidence         cycle.Confidence       `json:"confidence"`
	Source             cycle.PredictionSource `json:"source"`
}

type predictionHistoryResponse struct {
	Latest     *predictionResponse  `json:"latest_prediction"`
	All        []predictionResponse `json:"all_predictions"`
	ComputedAt string               `json:"computed_at"`
}

func newPredictionResponse(prediction cycle.FertilePrediction) predictionResponse {
	return predictionResponse{
		BasedOnDate:        cycle.FormatDay(prediction.BasedOnDate),
		ComputedAt:         cycle.FormatDay(prediction.ComputedAt),
		OvulationDate:      cycle.FormatDay(prediction.OvulationDate),
		FertileWindowStart: cycle.FormatDay(prediction.FertileWindowStart),
		FertileWindowEnd:   cycle.FormatDay(prediction.FertileWindowEnd),
		CycleLengthUsed:    prediction.CycleLengthUsed,
		Confidence:         prediction.Confidence,
		Source:             prediction.Source,
	}
}

func newPredictionHistoryResponse(history cycle.PredictionHistory) predictionHistoryResponse {
	response := predictionHistoryResponse{
		All:        make([]predictionResponse, 0, len(history.All)),
		ComputedAt: formatOptionalDay(history.ComputedAt),
	}
	if history.Latest != nil {
		latest := newPredictionResponse(*history.Latest)
		response.Latest = &latest
	}
	for _, prediction := range history.All {
		response.All = append(response.All, newPredictionResponse(prediction))
	}
	return response
}

type currentCycleResponse struct {
	Known                   bool         `json:"known"`
	CycleStart              string       `json:"cycle_start,omitempty"`
	CurrentCycleDayNumber   int          `json:"current_cycle_day_number"`
	PredictedNextPeriodDate string       `json:"predicted_next_period_date,omitempty"`
	DaysUntilNextPeriod     int          `json:"days_until_next_period"`
	Overdue                 bool         `json:"overdue"`
	OvulationDate           string       `json:"ovulation_date,omitempty"`
	FertileWindowStart      string       `json:"fertile_window_start,omitempty"`
	FertileWindowEnd        string       `json:"fertile_window_end,omitempty"`
	Phase                   string       `json:"phase"`
	PhaseLabel              string       `json:"phase_label"`
	CycleLengthStatus       cycle.Status `json:"cycle_length_status"`
	CycleLengthStatusLabel  string       `json:"cycle_length_status_label"`
	PeriodLengthStatus      cycle.Status `json:"period_length_status"`
	PeriodLengthStatusLabel string       `json:"period_length_status_label"`
	AverageCycleLength      float64      `json:"average_cycle_length"`
	MedianCycleLength       int          `json:"median_cycle_length"`
	AveragePeriodLength     float64      `json:"average_period_length"`
}

func (handler *Handler) newCurrentCycleResponse(current cycle.CurrentCycle, language string) currentCycleResponse {
	return currentCycleResponse{
		Known:                   current.Known,
		CycleStart:              formatOptionalDay(current.CycleStart),
		CurrentCycleDayNumber:   current.CurrentCycleDayNumber,
		PredictedNextPeriodDate: formatOptionalDay(current.PredictedNextPeriodDate),
		DaysUntilNextPeriod:     current.DaysUntilNextPeriod,
		Overdue:                 current.Overdue,
		OvulationDate:           formatOptionalDay(current.OvulationDate),
		FertileWindowStart:      formatOptionalDay(current.FertileWindowStart),
		FertileWindowEnd:        formatOptionalDay(current.FertileWindowEnd),
		Phase:                   current.Phase,
		PhaseLabel:              handler.i18n.Translate(language, "phase."+current.Phase),
		CycleLengthStatus:       current.CycleLengthStatus,
		CycleLengthStatusLabel:  handler.i18n.Translate(language, "status."+string(current.CycleLengthStatus)),
		PeriodLengthStatus:      current.PeriodLengthStatus,
		PeriodLengthStatusLabel: handler.i18n.Translate(language, "status."+string(current.PeriodLengthStatus)),
		AverageCycleLength:      current.AverageCycleLength,
		MedianCycleLength:       current.MedianCycleLength,
		AveragePeriodLength:     current.AveragePeriodLength,
	}
}
