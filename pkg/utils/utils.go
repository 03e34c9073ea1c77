package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenExpiry reads the exp claim from an admin token without verifying the
// signature. The portal never validates admin tokens itself; it only avoids
// relaying ones that are already stale. The upstream API is the authority.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// Sessions are always displayed in Central Time regardless of where the
// visitor is.
var displayZone = loadDisplayZone()

func loadDisplayZone() *time.Location {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		return time.FixedZone("CT", -6*60*60)
	}
	return loc
}

// FormatSessionRange renders a session's local-time range the way the portal
// shows it, e.g. "Thursday, September 25 at 9:00 PM - 9:45 PM CT".
func FormatSessionRange(start, end time.Time) string {
	s := start.In(displayZone)
	e := end.In(displayZone)
	return fmt.Sprintf("%s at %s - %s CT", s.Format("Monday, January 2"), s.Format("3:04 PM"), e.Format("3:04 PM"))
}

// FormatSessionStart renders a single session timestamp for the launchpad,
// e.g. "Thursday, September 25, 9:00 PM CT".
func FormatSessionStart(start time.Time) string {
	s := start.In(displayZone)
	return fmt.Sprintf("%s, %s CT", s.Format("Monday, January 2"), s.Format("3:04 PM"))
}
