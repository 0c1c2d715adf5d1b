package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/nftune-store/internal/config"
	"github.com/localnerve/nftune-store/internal/database"
	"github.com/localnerve/nftune-store/internal/handlers"
	"github.com/localnerve/nftune-store/internal/middleware"
	"github.com/localnerve/nftune-store/internal/services"
	"github.com/localnerve/nftune-store/internal/store"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

// setupApp builds the API over a fresh in-memory database, authenticating
// callers with HS256 bearer tokens.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{DBType: "sqlite", DBDatabase: database.MemoryDatabase, DBLogLevel: "silent", AuthMode: config.AuthModeJWT}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/healthz", handlers.Health(cfg, db))
	api := app.Group("/api", middleware.Identify(middleware.NewJWTResolver(testSecret)))
	handlers.RegisterRoutes(api, &handlers.Handlers{Service: services.New(store.New(db))})
	app.Use(handlers.NotFound)
	return app
}

func tokenFor(t *testing.T, subject string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// call sends a JSON request as caller; an empty caller sends no credentials.
func call(t *testing.T, app *fiber.App, method, path, caller string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, caller))
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(body))
	}
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer resp.Body.Close()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
}
