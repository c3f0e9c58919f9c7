package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/cycletrack/internal/cycle"
	"github.com/terraincognita07/cycletrack/internal/db"
	"github.com/terraincognita07/cycletrack/internal/i18n"
	"github.com/terraincognita07/cycletrack/internal/icalfeed"
	"github.com/terraincognita07/cycletrack/internal/models"
)

type testStack struct {
	repos    *db.Repositories
	auth     *AuthService
	days     *DayService
	periods  *PeriodService
	settings *SettingsService
	symptoms *SymptomService
	cycles   *CycleService
}

func fixedClock(value string) func() time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return parsed }
}

func newTestStack(t *testing.T, now func() time.Time) *testStack {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "services.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	translations, err := i18n.NewManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}

	repos := db.NewRepositories(database)
	symptoms := NewSymptomService(repos.Symptoms, repos.DailyLogs)
	days := NewDayService(repos.DailyLogs, symptoms, now, time.UTC)
	periods := NewPeriodService(repos.PeriodEntries, now, time.UTC)
	settings := NewSettingsService(repos.Users, CycleSettings{CycleLength: 28, PeriodLength: 5}, now, time.UTC)

	return &testStack{
		repos:    repos,
		auth:     NewAuthService(repos.Users, symptoms),
		days:     days,
		periods:  periods,
		settings: settings,
		symptoms: symptoms,
		cycles: NewCycleService(CycleServiceDeps{
			Engine:   cycle.NewEngine(nil),
			Days:     days,
			Periods:  periods,
			Settings: settings,
			Feed:     icalfeed.NewBuilder(translations),
			Now:      now,
			Location: time.UTC,
		}),
	}
}

func (stack *testStack) registerUser(t *testing.T, email string) models.User {
	t.Helper()

	user, err := stack.auth.Register(email, "StrongPass1", "")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func (stack *testStack) logPeriod(t *testing.T, userID uint, days ...string) {
	t.Helper()

	for _, day := range days {
		if _, err := stack.days.UpsertDay(userID, day, DayEntryInput{IsPeriod: true, Flow: models.FlowMedium}); err != nil {
			t.Fatalf("log period day %s: %v", day, err)
		}
	}
}
