package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestTokenExpiryReadsExpClaim(t *testing.T) {
	expiry := time.Date(2026, 9, 25, 21, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})

	got, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("TokenExpiry: %v", err)
	}
	if !got.Equal(expiry) {
		t.Errorf("expected %v, got %v", expiry, got)
	}
}

func TestTokenExpiryWithoutExpClaim(t *testing.T) {
	token := signedToken(t, jwt.RegisteredClaims{Subject: "admin"})

	if _, err := TokenExpiry(token); err == nil {
		t.Fatal("expected an error for a token without exp")
	}
}

func TestTokenExpiryRejectsGarbage(t *testing.T) {
	if _, err := TokenExpiry("not-a-jwt"); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestFormatSessionRange(t *testing.T) {
	// 2026-09-25 21:00 CDT (UTC-5).
	start := time.Date(2026, 9, 26, 2, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	got := FormatSessionRange(start, end)
	want := "Friday, September 25 at 9:00 PM - 9:45 PM CT"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatSessionRangeCrossesToStandardTime(t *testing.T) {
	// 2026-12-11 18:30 CST (UTC-6).
	start := time.Date(2026, 12, 12, 0, 30, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	got := FormatSessionRange(start, end)
	want := "Friday, December 11 at 6:30 PM - 7:15 PM CT"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatSessionStart(t *testing.T) {
	start := time.Date(2026, 9, 26, 2, 0, 0, 0, time.UTC)

	got := FormatSessionStart(start)
	want := "Friday, September 25, 9:00 PM CT"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
