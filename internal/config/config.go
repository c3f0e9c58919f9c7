package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix           = "CYCLETRACK"
	insecureSecretValue = "change_me_in_production"
	minSecretKeyLength  = 32
)

var (
	ErrSecretKeyMissing  = errors.New("auth.secret_key is required")
	ErrSecretKeyInsecure = errors.New("auth.secret_key uses the insecure placeholder")
	ErrSecretKeyTooShort = fmt.Errorf("auth.secret_key must be at least %d characters", minSecretKeyLength)
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Storage StorageConfig `mapstructure:"storage"`
	Cycle   CycleConfig   `mapstructure:"cycle"`
}

type AppConfig struct {
	Name            string `mapstructure:"name"`
	LogMode         string `mapstructure:"log_mode"`
	Timezone        string `mapstructure:"timezone"`
	DefaultLanguage string `mapstructure:"default_language"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

type AuthConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type CycleConfig struct {
	DefaultCycleLength  int `mapstructure:"default_cycle_length"`
	DefaultPeriodLength int `mapstructure:"default_period_length"`
}

// Load reads configPath (or ./config.yaml when empty) and overlays
// CYCLETRACK_* environment variables. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cycletrack")
	v.SetDefault("app.log_mode", "dev")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.default_language", "en")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.cookie_secure", false)

	v.SetDefault("auth.secret_key", "")

	v.SetDefault("storage.db_path", "data/cycletrack.db")

	v.SetDefault("cycle.default_cycle_length", 28)
	v.SetDefault("cycle.default_period_length", 5)
}

// ResolveSecretKey rejects empty, placeholder, and short signing secrets.
func (cfg *Config) ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(cfg.Auth.SecretKey)
	switch {
	case secret == "":
		return "", ErrSecretKeyMissing
	case secret == insecureSecretValue:
		return "", ErrSecretKeyInsecure
	case len(secret) < minSecretKeyLength:
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

// Location loads the configured timezone, falling back to UTC.
func (cfg *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(cfg.App.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return location, nil
}
