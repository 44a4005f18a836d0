package auth

import (
	"strings"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Secret:   "test-secret-key-for-unit-tests",
		Issuer:   "clinic-test",
		Audience: "clinic-test",
		Expiry:   30 * time.Minute,
	}
}

func testIdentity() TokenIdentity {
	return TokenIdentity{
		AccountID: 42,
		Username:  "alice",
		Email:     "alice@x.com",
		Role:      "Patient",
	}
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService(testConfig())

	token, expiry, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a signed token, got empty string")
	}
	if time.Until(expiry) > 30*time.Minute || time.Until(expiry) < 29*time.Minute {
		t.Errorf("Expected expiry ~30m from now, got %v", time.Until(expiry))
	}

	pr, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Expected valid token, got: %v", err)
	}
	if pr.AccountID != 42 {
		t.Errorf("Expected account id 42, got %d", pr.AccountID)
	}
	if pr.Username != "alice" {
		t.Errorf("Expected username 'alice', got '%s'", pr.Username)
	}
	if pr.Role != RolePatient {
		t.Errorf("Expected role Patient, got '%s'", pr.Role)
	}
	if pr.TokenID == "" {
		t.Error("Expected a jti claim, got empty string")
	}
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	svc := NewTokenService(testConfig())

	first, _, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	second, _, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	p1, _ := svc.Verify(first)
	p2, _ := svc.Verify(second)
	if p1.TokenID == p2.TokenID {
		t.Error("Expected distinct jti claims for separately issued tokens")
	}
}

func TestVerify_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.Expiry = -1 * time.Minute
	svc := NewTokenService(cfg)

	token, _, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := svc.Verify(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for expired token, got: %v", err)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	svc := NewTokenService(testConfig())

	token, _, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("Expected three-part token, got %d parts", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	if _, err := svc.Verify(tampered); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for tampered token, got: %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenService(testConfig())
	token, _, err := issuer.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	other := testConfig()
	other.Secret = "a-different-secret"
	if _, err := NewTokenService(other).Verify(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got: %v", err)
	}
}

func TestVerify_WrongIssuer(t *testing.T) {
	cfg := testConfig()
	cfg.Issuer = "someone-else"
	token, _, err := NewTokenService(cfg).Issue(testIdentity())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := NewTokenService(testConfig()).Verify(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for wrong issuer, got: %v", err)
	}
}

func TestVerify_WrongAudience(t *testing.T) {
	cfg := testConfig()
	cfg.Audience = "other-audience"
	token, _, err := NewTokenService(cfg).Issue(testIdentity())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := NewTokenService(testConfig()).Verify(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for wrong audience, got: %v", err)
	}
}

func TestVerify_UnknownRole(t *testing.T) {
	svc := NewTokenService(testConfig())
	id := testIdentity()
	id.Role = "Superuser"
	token, _, err := svc.Issue(id)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := svc.Verify(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for unknown role, got: %v", err)
	}
}

func TestVerify_EmptyToken(t *testing.T) {
	svc := NewTokenService(testConfig())
	if _, err := svc.Verify(""); err != ErrNoToken {
		t.Errorf("Expected ErrNoToken, got: %v", err)
	}
}

func TestIssue_MissingSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = ""
	if _, _, err := NewTokenService(cfg).Issue(testIdentity()); err != ErrNoSecret {
		t.Errorf("Expected ErrNoSecret, got: %v", err)
	}
}
