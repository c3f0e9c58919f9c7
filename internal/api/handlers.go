package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/cycletrack/internal/i18n"
	"github.com/terraincognita07/cycletrack/internal/logger"
	"github.com/terraincognita07/cycletrack/internal/services"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	auth     *services.AuthService
	days     *services.DayService
	periods  *services.PeriodService
	settings *services.SettingsService
	symptoms *services.SymptomService
	cycles   *services.CycleService
	i18n     *i18n.Manager
	log      *logger.Logger

	secretKey    []byte
	cookieSecure bool
	now          func() time.Time
	loginLimiter *attemptLimiter
}

type Options struct {
	SecretKey    string
	CookieSecure bool
	Now          func() time.Time
}

func NewHandler(deps Dependencies, opts Options) (*Handler, error) {
	if deps.Auth == nil || deps.Days == nil || deps.Periods == nil || deps.Settings == nil || deps.Symptoms == nil || deps.Cycles == nil {
		return nil, errors.New("all services are required")
	}
	if deps.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if opts.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Handler{
		auth:         deps.Auth,
		days:         deps.Days,
		periods:      deps.Periods,
		settings:     deps.Settings,
		symptoms:     deps.Symptoms,
		cycles:       deps.Cycles,
		i18n:         deps.I18n,
		log:          deps.Logger.Named("api"),
		secretKey:    []byte(opts.SecretKey),
		cookieSecure: opts.CookieSecure,
		now:          opts.Now,
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
	}, nil
}
