package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSecret     = errors.New("token signing secret is not configured")
)

// Claims are the identity claims carried by every issued token.
type Claims struct {
	Username string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Principal holds identity extracted from a validated token.
type Principal struct {
	AccountID int64
	Username  string
	Email     string
	Role      Role
	TokenID   string
}

// TokenIdentity is the account-shaped input Issue needs. Kept minimal so the
// accounts package can pass its own model without a dependency cycle.
type TokenIdentity struct {
	AccountID int64
	Username  string
	Email     string
	Role      string
}

// TokenService issues and verifies HS256 tokens. Issuance and verification
// are side-effect free and safe to run concurrently.
type TokenService struct {
	cfg Config
}

// NewTokenService constructs a TokenService from explicit config.
func NewTokenService(cfg Config) *TokenService {
	return &TokenService{cfg: cfg}
}

// Issue signs a time-bounded token for the given account. The jti claim is a
// fresh UUID so a future blacklist can key on individual tokens.
func (s *TokenService) Issue(id TokenIdentity) (string, time.Time, error) {
	if s.cfg.Secret == "" {
		return "", time.Time{}, ErrNoSecret
	}
	now := time.Now()
	expiry := now.Add(s.cfg.Expiry)
	claims := &Claims{
		Username: id.Username,
		Email:    id.Email,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.AccountID, 10),
			ID:        uuid.New().String(),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

// Verify validates signature, expiry, issuer and audience and returns the
// caller's Principal. Any failure collapses into ErrInvalidToken; partial
// claims are never returned.
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}
	if s.cfg.Secret == "" {
		return nil, ErrNoSecret
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.cfg.Issuer, true) {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyAudience(s.cfg.Audience, true) {
		return nil, ErrInvalidToken
	}
	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	role, ok := ParseRole(claims.Role)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &Principal{
		AccountID: accountID,
		Username:  claims.Username,
		Email:     claims.Email,
		Role:      role,
		TokenID:   claims.ID,
	}, nil
}
