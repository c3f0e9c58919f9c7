// Package icalfeed renders cycle forecasts as an iCalendar subscription feed.
package icalfeed

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/terraincognita07/cycletrack/internal/cycle"
)

const (
	propUID         = "UID"
	propSummary     = "SUMMARY"
	propDescription = "DESCRIPTION"
	propDTStart     = "DTSTART"
	propDTEnd       = "DTEND"
	propDTStamp     = "DTSTAMP"
	propCategories  = "CATEGORIES"
	propTransp      = "TRANSP"
	propVersion     = "VERSION"
	propProdID      = "PRODID"
	propCalScale    = "CALSCALE"
	propCalName     = "X-WR-CALNAME"
	propRefresh     = "REFRESH-INTERVAL"

	icalVersion  = "2.0"
	icalProdID   = "-//cycletrack//cycle forecast//EN"
	icalScale    = "GREGORIAN"
	icalDomain   = "cycletrack.local"
	transparent  = "TRANSPARENT"
	refreshEvery = 12 * time.Hour

	stubCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + icalProdID + "\r\nCALSCALE:GREGORIAN\r\nX-WR-CALNAME:%s\r\nEND:VCALENDAR\r\n"
)

const (
	categoryPeriod    = "PERIOD"
	categoryOvulation = "OVULATION"
	categoryFertile   = "FERTILE"
)

// uidNamespace scopes the name-based event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(icalDomain))

// Translator resolves a message key for the feed language.
type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

// Input is everything one feed rendering needs.
type Input struct {
	UserID           uint
	Language         string
	PredictedPeriods []cycle.DayRange
	Latest           *cycle.FertilePrediction
	LoggedCycles     int
	GeneratedAt      time.Time
}

type Builder struct {
	translator Translator
}

func NewBuilder(translator Translator) *Builder {
	return &Builder{translator: translator}
}

// Render encodes the forecast. A forecast with no events still yields a
// valid, empty VCALENDAR.
func (builder *Builder) Render(input Input) ([]byte, error) {
	name := builder.translator.Translate(input.Language, "feed.name")
	events := builder.events(input)
	if len(events) == 0 {
		return []byte(fmt.Sprintf(stubCalendar, escapeText(name))), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(propVersion, icalVersion)
	cal.Props.SetText(propProdID, icalProdID)
	cal.Props.SetText(propCalScale, icalScale)

	// X-WR-CALNAME is unknown to go-ical, so SetText would add VALUE=TEXT.
	calName := ical.NewProp(propCalName)
	calName.Value = escapeText(name)
	cal.Props.Set(calName)

	refresh := ical.NewProp(propRefresh)
	refresh.SetDuration(refreshEvery)
	cal.Props.Set(refresh)

	stamp := ical.NewProp(propDTStamp)
	stamp.SetDateTime(input.GeneratedAt.UTC())
	for _, event := range events {
		event.Props.Set(stamp)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar feed: %w", err)
	}
	return buf.Bytes(), nil
}

func (builder *Builder) events(input Input) []*ical.Event {
	description := builder.translator.Translatef(input.Language, "feed.description", input.LoggedCycles)
	events := make([]*ical.Event, 0, len(input.PredictedPeriods)+2)

	for _, period := range input.PredictedPeriods {
		events = append(events, builder.allDayEvent(input, categoryPeriod, "feed.predicted_period", period, description))
	}
	if input.Latest != nil {
		fertile := input.Latest.Window()
		ovulation := cycle.DayRange{Start: input.Latest.OvulationDate, End: input.Latest.OvulationDate}
		events = append(events,
			builder.allDayEvent(input, categoryFertile, "feed.fertile_window", fertile, description),
			builder.allDayEvent(input, categoryOvulation, "feed.ovulation", ovulation, description),
		)
	}
	return events
}

// allDayEvent builds a VEVENT spanning span inclusively; DTEND is exclusive
// per RFC 5545.
func (builder *Builder) allDayEvent(input Input, category string, summaryKey string, span cycle.DayRange, description string) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(propUID, EventUID(input.UserID, category, span.Start))
	event.Props.SetText(propSummary, builder.translator.Translate(input.Language, summaryKey))
	event.Props.SetText(propDescription, description)
	event.Props.SetText(propCategories, category)
	event.Props.SetText(propTransp, transparent)

	start := ical.NewProp(propDTStart)
	start.SetDate(span.Start)
	event.Props.Set(start)

	end := ical.NewProp(propDTEnd)
	end.SetDate(cycle.AddDays(span.End, 1))
	event.Props.Set(end)

	return event
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// escapeText escapes a TEXT value as RFC 5545 section 3.3.11 requires.
func escapeText(value string) string {
	return textEscaper.Replace(value)
}

// EventUID is stable across renders so calendar clients update events in
// place instead of duplicating them.
func EventUID(userID uint, category string, start time.Time) string {
	name := fmt.Sprintf("%d/%s/%s", userID, category, cycle.FormatDay(start))
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@" + icalDomain
}
