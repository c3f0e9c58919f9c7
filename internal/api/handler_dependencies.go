package api

import (
	"time"

	"github.com/terraincognita07/cycletrack/internal/cycle"
	"github.com/terraincognita07/cycletrack/internal/db"
	"github.com/terraincognita07/cycletrack/internal/i18n"
	"github.com/terraincognita07/cycletrack/internal/icalfeed"
	"github.com/terraincognita07/cycletrack/internal/logger"
	"github.com/terraincognita07/cycletrack/internal/services"
	"gorm.io/gorm"
)

// Dependencies are the services a Handler serves requests through.
type Dependencies struct {
	Auth     *services.AuthService
	Days     *services.DayService
	Periods  *services.PeriodService
	Settings *services.SettingsService
	Symptoms *services.SymptomService
	Cycles   *services.CycleService
	I18n     *i18n.Manager
	Logger   *logger.Logger
}

type DependencySetup struct {
	Location *time.Location
	Now      func() time.Time
	Defaults services.CycleSettings
	I18n     *i18n.Manager
	Logger   *logger.Logger
}

// BuildDependencies wires repositories, services, the engine, and the feed
// builder over one database handle.
func BuildDependencies(database *gorm.DB, setup DependencySetup) Dependencies {
	if setup.Logger == nil {
		setup.Logger = logger.Nop()
	}
	repos := db.NewRepositories(database)

	symptoms := services.NewSymptomService(repos.Symptoms, repos.DailyLogs)
	days := services.NewDayService(repos.DailyLogs, symptoms, setup.Now, setup.Location)
	periods := services.NewPeriodService(repos.PeriodEntries, setup.Now, setup.Location)
	settings := services.NewSettingsService(repos.Users, setup.Defaults, setup.Now, setup.Location)

	return Dependencies{
		Auth:     services.NewAuthService(repos.Users, symptoms),
		Days:     days,
		Periods:  periods,
		Settings: settings,
		Symptoms: symptoms,
		Cycles: services.NewCycleService(services.CycleServiceDeps{
			Engine:   cycle.NewEngine(setup.Logger.Named("cycle").Zap()),
			Days:     days,
			Periods:  periods,
			Settings: settings,
			Feed:     icalfeed.NewBuilder(setup.I18n),
			Now:      setup.Now,
			Location: setup.Location,
		}),
		I18n:   setup.I18n,
		Logger: setup.Logger,
	}
}
