package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/db"
	"github.com/terraincognita07/cycletrack/internal/i18n"
	"github.com/terraincognita07/cycletrack/internal/services"
	"gorm.io/gorm"
)

const (
	testSecretKey = "0123456789abcdef0123456789abcdef"
	testPassword  = "StrongPass1"
)

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	now      time.Time
}

func newTestApp(t *testing.T, nowRaw string) *testApp {
	t.Helper()

	now, err := time.Parse(time.RFC3339, nowRaw)
	if err != nil {
		t.Fatalf("parse now: %v", err)
	}
	clock := func() time.Time { return now }

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cycletrack-test.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(database); err != nil {
			t.Errorf("close sqlite: %v", err)
		}
	})

	manager, err := i18n.NewManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	deps := BuildDependencies(database, DependencySetup{
		Location: time.UTC,
		Now:      clock,
		Defaults: services.CycleSettings{CycleLength: 28, PeriodLength: 5},
		I18n:     manager,
	})
	handler, err := NewHandler(deps, Options{SecretKey: testSecretKey, Now: clock})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	return &testApp{app: NewApp(handler, AppOptions{}), database: database, now: now}
}

func (ta *testApp) do(t *testing.T, method string, path string, body any, authCookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookieName+"="+authCookie)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

// registerAndLogin creates an account and returns its session cookie value.
func (ta *testApp) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	response := ta.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    email,
		"password": testPassword,
	}, "")
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected auth cookie after register")
	}
	return cookie.Value
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decode api error: %v", err)
	}
	return strings.TrimSpace(payload["error"])
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(body))
	}
}
