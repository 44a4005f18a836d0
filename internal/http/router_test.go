package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
	"github.com/clinic-appointment-crm/clinic-service/internal/testutil"
)

func testPermissions() auth.Permissions {
	return auth.Permissions{
		"Patient": {"patient:me", "appointment:view"},
		"Admin":   {"patient:view", "admin:manage"},
	}
}

// newTestRouter builds a router over a nil database. Only routes that are
// rejected by the middleware chain, or that never touch storage, may be
// exercised.
func newTestRouter(t *testing.T) (*auth.TokenService, *testutil.Client) {
	t.Helper()
	cfg := testutil.AuthConfig()
	tokens := auth.NewTokenService(cfg)
	router := SetupRouter(nil, tokens, cfg, testPermissions(), nil, nil)
	return tokens, &testutil.Client{Handler: router}
}

func TestHealthEndpoint_Public(t *testing.T) {
	_, client := newTestRouter(t)

	rr := client.Do(t, "GET", "/health", "", nil)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected health body: %s", rr.Body.String())
	}
}

// TestRegisterDoctor_PublicRoute tests that doctor self-registration does not
// sit behind the auth middleware. An empty body reaching the handler draws a
// 400 from JSON decoding, never a 401.
func TestRegisterDoctor_PublicRoute(t *testing.T) {
	_, client := newTestRouter(t)

	rr := client.Do(t, "POST", "/api/auth/register/doctor", "", nil)

	if rr.Code == http.StatusUnauthorized {
		t.Fatalf("Expected the route to be public, got 401: %s", rr.Body.String())
	}
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an empty body, got %d", rr.Code)
	}
}

func TestProtectedRoute_MissingToken(t *testing.T) {
	_, client := newTestRouter(t)

	rr := client.Do(t, "GET", "/api/patients", "", nil)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Unauthorized") {
		t.Errorf("Expected JSON error body, got: %s", rr.Body.String())
	}
}

func TestProtectedRoute_WrongRole(t *testing.T) {
	tokens, client := newTestRouter(t)

	token := testutil.IssueToken(t, tokens, 7, "alice", "Patient")
	rr := client.Do(t, "GET", "/api/patients", token, nil)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rr.Code)
	}
}

// TestVerify_CookieTransport tests that the session cookie is accepted as a
// credential through the cookie shim
func TestVerify_CookieTransport(t *testing.T) {
	tokens, client := newTestRouter(t)

	token := testutil.IssueToken(t, tokens, 7, "alice", "Patient")
	req := httptest.NewRequest("GET", "/api/auth/verify", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})

	rr := httptest.NewRecorder()
	client.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"alice"`) {
		t.Errorf("Expected principal in verify body, got: %s", rr.Body.String())
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	tokens, client := newTestRouter(t)

	token := testutil.IssueToken(t, tokens, 7, "alice", "Patient")
	rr := client.Do(t, "GET", "/api/auth/verify", token+"x", nil)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	_, client := newTestRouter(t)
	handler := CORSMiddleware(client.Handler)

	req := httptest.NewRequest("OPTIONS", "/api/appointments", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected origin echoed back, got '%s'", got)
	}
}
