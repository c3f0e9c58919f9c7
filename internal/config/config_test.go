package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "data/cycletrack.db", cfg.Storage.DBPath)
	assert.Equal(t, 28, cfg.Cycle.DefaultCycleLength)
	assert.Equal(t, 5, cfg.Cycle.DefaultPeriodLength)
	assert.Equal(t, "en", cfg.App.DefaultLanguage)
}

func TestLoadReadsFileAndEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cycletrack.yaml")
	content := []byte("server:\n  port: \"9090\"\napp:\n  timezone: Europe/Berlin\ncycle:\n  default_cycle_length: 30\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CYCLETRACK_STORAGE_DB_PATH", "/tmp/override.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Cycle.DefaultCycleLength)
	assert.Equal(t, "/tmp/override.db", cfg.Storage.DBPath)

	location, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", location.String())
}

func TestResolveSecretKey(t *testing.T) {
	cases := []struct {
		secret  string
		wantErr error
	}{
		{secret: "", wantErr: ErrSecretKeyMissing},
		{secret: "change_me_in_production", wantErr: ErrSecretKeyInsecure},
		{secret: "too-short-secret", wantErr: ErrSecretKeyTooShort},
		{secret: "0123456789abcdef0123456789abcdef"},
	}

	for _, testCase := range cases {
		cfg := &Config{Auth: AuthConfig{SecretKey: testCase.secret}}
		secret, err := cfg.ResolveSecretKey()
		if testCase.wantErr != nil {
			assert.ErrorIs(t, err, testCase.wantErr)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, testCase.secret, secret)
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{App: AppConfig{Timezone: "Mars/Olympus"}}
	location, err := cfg.Location()
	assert.Error(t, err)
	assert.Equal(t, time.UTC, location)
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	previous, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(previous); err != nil {
			t.Fatal(err)
		}
	})
}
