package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/couplesync/internal/db"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppWithCodeTTL(t, 0)
}

func newTestAppWithCodeTTL(t *testing.T, partnerCodeTTL time.Duration) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "couplesync-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, "test-secret-key", time.UTC, false, partnerCodeTTL)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func performJSON(t *testing.T, app *fiber.App, method string, path string, authCookie string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal %s %s payload: %v", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSONBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	decoded := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return decoded
}

func requireStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("status = %d, want %d (body: %s)", response.StatusCode, want, body)
	}
}

func extractAuthCookie(t *testing.T, response *http.Response) string {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return fmt.Sprintf("%s=%s", cookie.Name, cookie.Value)
		}
	}
	t.Fatal("expected auth cookie in response")
	return ""
}

// registerTestUser signs an account up over the API and returns its auth
// cookie plus the one-time recovery code.
func registerTestUser(t *testing.T, app *fiber.App, email string, password string) (string, string) {
	t.Helper()

	response := performJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
	requireStatus(t, response, fiber.StatusCreated)

	cookie := extractAuthCookie(t, response)
	body := decodeJSONBody(t, response)
	recoveryCode, _ := body["recovery_code"].(string)
	if recoveryCode == "" {
		t.Fatal("expected recovery code in registration response")
	}
	return cookie, recoveryCode
}

func completeTestOnboarding(t *testing.T, app *fiber.App, authCookie string, fullName string) {
	t.Helper()

	response := performJSON(t, app, http.MethodPost, "/api/onboarding", authCookie, map[string]any{
		"full_name":            fullName,
		"top_love_language":    "Quality Time",
		"second_love_language": "Physical Touch",
	})
	requireStatus(t, response, fiber.StatusOK)
	response.Body.Close()
}

// onboardedTestUser is the common fixture: a registered account that has
// finished onboarding.
func onboardedTestUser(t *testing.T, app *fiber.App, email string, fullName string) string {
	t.Helper()

	cookie, _ := registerTestUser(t, app, email, "Sup3rSecret")
	completeTestOnboarding(t, app, cookie, fullName)
	return cookie
}
