// Package testutil provides token and HTTP helpers shared by handler and
// router tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
)

// AuthConfig returns the token configuration used across tests.
func AuthConfig() auth.Config {
	return auth.Config{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "clinic-test",
		Audience:   "clinic-test",
		Expiry:     30 * time.Minute,
		CookieName: "jwt",
	}
}

// IssueToken signs a token for the given identity, failing the test on error.
func IssueToken(t *testing.T, tokens *auth.TokenService, accountID int64, username, role string) string {
	t.Helper()
	token, _, err := tokens.Issue(auth.TokenIdentity{
		AccountID: accountID,
		Username:  username,
		Email:     username + "@clinic.test",
		Role:      role,
	})
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// Client drives an http.Handler in-process.
type Client struct {
	Handler http.Handler
}

// Do sends a request with an optional bearer token and JSON body.
func (c *Client) Do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	c.Handler.ServeHTTP(rr, req)
	return rr
}
