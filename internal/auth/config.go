package auth

import (
	"os"
	"strconv"
	"time"
)

// Config holds token signing configuration. It is constructed once at
// startup and passed into NewTokenService; nothing reads it ambiently.
type Config struct {
	Secret       string
	Issuer       string
	Audience     string
	Expiry       time.Duration
	CookieName   string
	CookieSecure bool
}

var (
	DefaultIssuer   = "clinic-appointment-crm"
	DefaultAudience = "clinic-appointment-crm"
)

// LoadConfig reads config from env with sensible defaults.
// Override with JWT_SECRET, JWT_ISSUER, JWT_AUDIENCE and JWT_EXPIRY_MINUTES.
func LoadConfig() Config {
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = DefaultIssuer
	}
	audience := os.Getenv("JWT_AUDIENCE")
	if audience == "" {
		audience = DefaultAudience
	}
	expiry := 60 * time.Minute
	if v := os.Getenv("JWT_EXPIRY_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			expiry = time.Duration(minutes) * time.Minute
		}
	}
	return Config{
		Secret:       os.Getenv("JWT_SECRET"),
		Issuer:       issuer,
		Audience:     audience,
		Expiry:       expiry,
		CookieName:   "jwt",
		CookieSecure: os.Getenv("COOKIE_INSECURE") == "",
	}
}
