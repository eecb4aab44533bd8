package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func issueCodeFor(t *testing.T, app *fiber.App, authCookie string) string {
	t.Helper()

	response := performJSON(t, app, http.MethodPost, "/api/partner/code", authCookie, nil)
	requireStatus(t, response, fiber.StatusCreated)
	body := decodeJSONBody(t, response)
	code, _ := body["code"].(string)
	if code == "" {
		t.Fatal("expected pairing code in response")
	}
	return code
}

func linkWithCode(t *testing.T, app *fiber.App, authCookie string, code string) *http.Response {
	t.Helper()
	return performJSON(t, app, http.MethodPost, "/api/partner/link", authCookie, map[string]any{"code": code})
}

func TestPartnerLinkFlow(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	ownerCookie := onboardedTestUser(t, app, "owner@example.com", "Code Owner")
	partnerCookie := onboardedTestUser(t, app, "partner@example.com", "Code Partner")

	code := issueCodeFor(t, app, ownerCookie)

	response := performJSON(t, app, http.MethodGet, "/api/partner", ownerCookie, nil)
	requireStatus(t, response, fiber.StatusOK)
	status := decodeJSONBody(t, response)
	if status["linked"] != false || status["code"] != code {
		t.Fatalf("pre-link status = %v, want unlinked with live code", status)
	}

	response = linkWithCode(t, app, partnerCookie, code)
	requireStatus(t, response, fiber.StatusCreated)
	link := decodeJSONBody(t, response)
	if link["relationship_id"] == nil {
		t.Fatal("expected relationship id in link response")
	}

	// Both sides now see each other; the consumed code is gone.
	response = performJSON(t, app, http.MethodGet, "/api/partner", ownerCookie, nil)
	requireStatus(t, response, fiber.StatusOK)
	status = decodeJSONBody(t, response)
	if status["linked"] != true {
		t.Fatalf("owner status = %v, want linked", status)
	}
	partner := status["partner"].(map[string]any)
	if partner["display_name"] != "Code Partner" {
		t.Fatalf("owner's partner = %v, want Code Partner", partner["display_name"])
	}

	response = performJSON(t, app, http.MethodGet, "/api/partner", partnerCookie, nil)
	requireStatus(t, response, fiber.StatusOK)
	status = decodeJSONBody(t, response)
	partner = status["partner"].(map[string]any)
	if partner["display_name"] != "Code Owner" {
		t.Fatalf("partner's partner = %v, want Code Owner", partner["display_name"])
	}

	response = linkWithCode(t, app, partnerCookie, code)
	requireStatus(t, response, fiber.StatusNotFound)
	response.Body.Close()
}

func TestLinkRejectsOwnCode(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	cookie := onboardedTestUser(t, app, "solo@example.com", "Solo User")

	code := issueCodeFor(t, app, cookie)
	response := linkWithCode(t, app, cookie, code)
	requireStatus(t, response, fiber.StatusBadRequest)
	response.Body.Close()
}

func TestLinkUnknownCodeNotFound(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	cookie := onboardedTestUser(t, app, "alone@example.com", "Alone User")

	response := linkWithCode(t, app, cookie, "QQ777777")
	requireStatus(t, response, fiber.StatusNotFound)
	response.Body.Close()
}

func TestLinkedUsersCannotLinkAgain(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	firstCookie := onboardedTestUser(t, app, "first@example.com", "First")
	secondCookie := onboardedTestUser(t, app, "second@example.com", "Second")
	thirdCookie := onboardedTestUser(t, app, "third@example.com", "Third")

	code := issueCodeFor(t, app, firstCookie)
	response := linkWithCode(t, app, secondCookie, code)
	requireStatus(t, response, fiber.StatusCreated)
	response.Body.Close()

	// A linked user can neither mint a new code nor accept another one.
	response = performJSON(t, app, http.MethodPost, "/api/partner/code", firstCookie, nil)
	requireStatus(t, response, fiber.StatusConflict)
	response.Body.Close()

	thirdCode := issueCodeFor(t, app, thirdCookie)
	response = linkWithCode(t, app, secondCookie, thirdCode)
	requireStatus(t, response, fiber.StatusConflict)
	response.Body.Close()
}

func TestLinkCaseInsensitiveCode(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	ownerCookie := onboardedTestUser(t, app, "upper@example.com", "Upper")
	partnerCookie := onboardedTestUser(t, app, "lower@example.com", "Lower")

	code := issueCodeFor(t, app, ownerCookie)
	lowered := "  " + strings.ToLower(code) + " "

	response := linkWithCode(t, app, partnerCookie, lowered)
	requireStatus(t, response, fiber.StatusCreated)
	response.Body.Close()
}

func TestReissueInvalidatesPreviousCode(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	ownerCookie := onboardedTestUser(t, app, "mint@example.com", "Mint")
	partnerCookie := onboardedTestUser(t, app, "taker@example.com", "Taker")

	oldCode := issueCodeFor(t, app, ownerCookie)
	newCode := issueCodeFor(t, app, ownerCookie)

	response := linkWithCode(t, app, partnerCookie, oldCode)
	requireStatus(t, response, fiber.StatusNotFound)
	response.Body.Close()

	response = linkWithCode(t, app, partnerCookie, newCode)
	requireStatus(t, response, fiber.StatusCreated)
	response.Body.Close()
}
