package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/db"
	"github.com/omspdev/omsp/internal/services"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail    = "admin@omsp.gov.ph"
	testAdminPassword = "admin-password"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "omsp.db"))
	require.NoError(t, err)
	require.NoError(t, db.Seed(database, testAdminEmail, testAdminPassword, testNow))

	repos := db.NewRepositories(database)
	logger := zerolog.Nop()
	thresholds := services.DefaultTermThresholds()

	activity := services.NewActivityService(repos.Activity, logger)
	budget := services.NewBudgetService(repos.BudgetLogs, decimal.NewFromInt(70000))
	frequency := services.NewFrequencyService(repos.RequestCounts, repos.Frequencies, services.DefaultFrequencyThresholds())
	auth := services.NewAuthService(repos.Users, repos.BoardMembers, repos.Sessions, activity)
	users := services.NewUserService(repos.Users, repos.BoardMembers, activity, thresholds)
	assistance := services.NewAssistanceService(
		repos.FARecords, repos.PARecords, repos.BoardMembers, repos.Beneficiaries,
		repos.Catalog, budget, frequency, activity, thresholds,
	)
	archive := services.NewArchiveService(repos.BoardMembers, activity, thresholds)
	catalog := services.NewCatalogService(repos.Catalog, activity, thresholds)

	handler := NewHandler(HandlerDeps{
		Auth:          auth,
		Users:         users,
		Assistance:    assistance,
		Budget:        budget,
		Frequency:     frequency,
		Archive:       archive,
		Catalog:       catalog,
		Activity:      activity,
		BoardMembers:  repos.BoardMembers,
		Beneficiaries: repos.Beneficiaries,
		SecretKey:     []byte("test-secret"),
		Location:      time.UTC,
		Thresholds:    thresholds,
	})
	handler.clock = func() time.Time { return testNow }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload interface{}, cookie string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", sessionCookieName+"="+cookie)
	}

	response, err := app.Test(request, -1)
	require.NoError(t, err)
	return response
}

func decodeBody(t *testing.T, response *http.Response, target interface{}) {
	t.Helper()
	defer response.Body.Close()
	require.NoError(t, json.NewDecoder(response.Body).Decode(target))
}

func login(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, fiber.StatusOK, response.StatusCode, "login for %s", email)

	for _, cookie := range response.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie.Value
		}
	}
	t.Fatalf("login response carried no %s cookie", sessionCookieName)
	return ""
}
