package cycle

import (
	"time"

	"go.uber.org/zap"
)

type AnnotationKind string

const (
	KindUserPeriod      AnnotationKind = "user_period"
	KindRecordedPeriod  AnnotationKind = "recorded_period"
	KindPredictedPeriod AnnotationKind = "predicted_period"
	KindFertile         AnnotationKind = "fertile"
	KindOvulation       AnnotationKind = "ovulation"
)

const (
	ColorUserPeriod      = "#D64545"
	ColorRecordedPeriod  = "#F28B82"
	ColorPredictedPeriod = "#F8BBD0"
	ColorFertile         = "#81C784"
	ColorOvulation       = "#2E7D32"
)

const (
	predictedCyclesAhead    = 6
	nonLatestOpacityFactor  = 0.8
	highConfidenceOpacity   = 1.0
	mediumConfidenceOpacity = 0.7
	lowConfidenceOpacity    = 0.45
	userPeriodOpacity       = 1.0
	recordedPeriodOpacity   = 0.85
	predictedPeriodOpacity  = 0.6
)

// CalendarAnnotation is the single tag a calendar cell carries.
type CalendarAnnotation struct {
	Kind         AnnotationKind `json:"kind"`
	DisplayColor string         `json:"display_color"`
	Opacity      float64        `json:"opacity"`
	Confidence   Confidence     `json:"confidence,omitempty"`
}

// Calendar maps YYYY-MM-DD to the annotation that won that day.
type Calendar map[string]CalendarAnnotation

// CalendarInput feeds BuildCalendar. A zero Now lets every logged group anchor
// the predicted periods; otherwise groups starting after Now are ignored.
type CalendarInput struct {
	Days            []time.Time
	RecordedPeriods []DayRange
	Preferences     Preferences
	Month           Month
	Predictions     PredictionHistory
	Now             time.Time
	Logger          *zap.Logger
}

type annotationCandidate struct {
	Day        time.Time
	Annotation CalendarAnnotation
}

type annotationGenerator struct {
	name     string
	generate func(view calendarView) []annotationCandidate
}

// annotationGenerators is the precedence order: a generator only claims days
// no earlier generator has claimed.
var annotationGenerators = []annotationGenerator{
	{name: string(KindUserPeriod), generate: userPeriodCandidates},
	{name: "fertility", generate: fertilityCandidates},
	{name: string(KindPredictedPeriod), generate: predictedPeriodCandidates},
	{name: string(KindRecordedPeriod), generate: recordedPeriodCandidates},
}

// AnnotationPrecedence lists generator names from highest to lowest priority.
func AnnotationPrecedence() []string {
	names := make([]string, 0, len(annotationGenerators))
	for _, generator := range annotationGenerators {
		names = append(names, generator.name)
	}
	return names
}

type calendarView struct {
	visible     DayRange
	days        []time.Time
	groups      []PeriodGroup
	earliest    time.Time
	reference   time.Time
	lmp         time.Time
	hasLMP      bool
	recorded    []DayRange
	prefs       Preferences
	predictions PredictionHistory
}

func newCalendarView(input CalendarInput) calendarView {
	gridStart, gridEnd := input.Month.GridRange()
	view := calendarView{
		visible:     DayRange{Start: gridStart, End: gridEnd},
		days:        uniqueSortedDays(input.Days),
		prefs:       input.Preferences,
		predictions: input.Predictions,
	}
	view.groups = GroupConsecutiveDays(view.days)
	view.lmp, view.hasLMP = input.Preferences.lastMenstrualPeriod(input.Logger)

	if len(view.groups) > 0 {
		view.earliest = view.groups[0].Start()
	}
	anchors := view.groups
	if !input.Now.IsZero() {
		anchors = pastGroups(view.groups, DayOf(input.Now))
	}
	if len(anchors) > 0 {
		view.reference = anchors[len(anchors)-1].Start()
	}
	if view.hasLMP && view.lmp.After(view.reference) {
		view.reference = view.lmp
	}

	view.recorded = make([]DayRange, 0, len(input.RecordedPeriods)+1)
	for _, recorded := range input.RecordedPeriods {
		if recorded.Start.IsZero() {
			continue
		}
		if recorded.End.IsZero() || recorded.End.Before(recorded.Start) {
			recorded.End = recorded.Start
		}
		view.recorded = append(view.recorded, DayRange{Start: DayOf(recorded.Start), End: DayOf(recorded.End)})
	}
	if view.hasLMP {
		view.recorded = append(view.recorded, DayRange{
			Start: view.lmp,
			End:   AddDays(view.lmp, input.Preferences.periodLength()-1),
		})
	}
	return view
}

func (view calendarView) hasHistory() bool {
	return len(view.days) > 0 || len(view.recorded) > 0
}

// BuildCalendar merges logged, predicted, and recorded period days with
// fertile and ovulation days into one annotation per day of the month's grid.
func BuildCalendar(input CalendarInput) Calendar {
	view := newCalendarView(input)
	calendar := Calendar{}
	if !view.hasHistory() {
		return calendar
	}

	for _, generator := range annotationGenerators {
		for _, candidate := range generator.generate(view) {
			if !view.visible.Contains(candidate.Day) {
				continue
			}
			key := FormatDay(candidate.Day)
			if _, claimed := calendar[key]; claimed {
				continue
			}
			calendar[key] = candidate.Annotation
		}
	}
	return calendar
}

func userPeriodCandidates(view calendarView) []annotationCandidate {
	candidates := make([]annotationCandidate, 0, len(view.days))
	for _, day := range view.days {
		candidates = append(candidates, annotationCandidate{
			Day: day,
			Annotation: CalendarAnnotation{
				Kind:         KindUserPeriod,
				DisplayColor: ColorUserPeriod,
				Opacity:      userPeriodOpacity,
			},
		})
	}
	return candidates
}

func fertilityCandidates(view calendarView) []annotationCandidate {
	candidates := make([]annotationCandidate, 0)
	for index, prediction := range view.predictions.All {
		window, ok := prediction.Window().Intersect(view.visible)
		if !ok {
			continue
		}

		opacity := confidenceOpacity(prediction.Confidence)
		if index > 0 {
			opacity *= nonLatestOpacityFactor
		}

		for day := window.Start; !day.After(window.End); day = AddDays(day, 1) {
			annotation := CalendarAnnotation{
				Kind:         KindFertile,
				DisplayColor: ColorFertile,
				Opacity:      opacity,
				Confidence:   prediction.Confidence,
			}
			if sameDay(day, prediction.OvulationDate) {
				annotation.Kind = KindOvulation
				annotation.DisplayColor = ColorOvulation
			}
			candidates = append(candidates, annotationCandidate{Day: day, Annotation: annotation})
		}
	}
	return candidates
}

func predictedPeriodCandidates(view calendarView) []annotationCandidate {
	if view.reference.IsZero() {
		return nil
	}

	cycleLength := view.prefs.cycleLength()
	periodLength := view.prefs.periodLength()
	candidates := make([]annotationCandidate, 0)
	for cycles := 1; cycles <= predictedCyclesAhead; cycles++ {
		start := AddDays(view.reference, cycles*cycleLength)
		if !view.earliest.IsZero() && start.Before(view.earliest) {
			continue
		}
		projected, ok := DayRange{Start: start, End: AddDays(start, periodLength-1)}.Intersect(view.visible)
		if !ok {
			continue
		}
		for day := projected.Start; !day.After(projected.End); day = AddDays(day, 1) {
			candidates = append(candidates, annotationCandidate{
				Day: day,
				Annotation: CalendarAnnotation{
					Kind:         KindPredictedPeriod,
					DisplayColor: ColorPredictedPeriod,
					Opacity:      predictedPeriodOpacity,
				},
			})
		}
	}
	return candidates
}

func recordedPeriodCandidates(view calendarView) []annotationCandidate {
	candidates := make([]annotationCandidate, 0)
	for _, recorded := range view.recorded {
		visible, ok := recorded.Intersect(view.visible)
		if !ok {
			continue
		}
		for day := visible.Start; !day.After(visible.End); day = AddDays(day, 1) {
			candidates = append(candidates, annotationCandidate{
				Day: day,
				Annotation: CalendarAnnotation{
					Kind:         KindRecordedPeriod,
					DisplayColor: ColorRecordedPeriod,
					Opacity:      recordedPeriodOpacity,
				},
			})
		}
	}
	return candidates
}

func confidenceOpacity(confidence Confidence) float64 {
	switch confidence {
	case ConfidenceHigh:
		return highConfidenceOpacity
	case ConfidenceMedium:
		return mediumConfidenceOpacity
	default:
		return lowConfidenceOpacity
	}
}
