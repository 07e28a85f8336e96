package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt reads the "exp" claim of a JWT.
//
// The signature is not verified: the MyHelp API verifies tokens by itself.
// ok is false when the token is not a JWT or has no "exp".
func ExpiresAt(token string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	e, err := claims.GetExpirationTime()
	if err != nil || e == nil {
		return time.Time{}, false
	}
	return e.Time, true
}

// Expired reports whether token is expired at now.
//
// Tokens whose expiry is unknown are not expired.
func Expired(token string, now time.Time) bool {
	exp, ok := ExpiresAt(token)
	if !ok {
		return false
	}
	return !now.Before(exp)
}
