package handlers

import (
	"time"

	"github.com/labstack/echo/v4"

	apierr "github.com/daariikk/myhelp-web/pkg/api/types/errors"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/daariikk/myhelp-web/pkg/session"
)

// keys of echo.Context values set by guards.
const (
	adminTokenKey = "adminToken"
	patientKey    = "patient"
)

// DenyFunc responds to requests which are not authorized.
type DenyFunc func(c echo.Context) error

// RedirectTo denies by redirecting to the login page at path.
func RedirectTo(path string) DenyFunc {
	return func(c echo.Context) error {
		return seeOther(c, path, nil)
	}
}

// Unauthorized denies with 401.
func Unauthorized(c echo.Context) error {
	return apierr.Unauthorized("Требуется авторизация", nil)
}

// AdminGuard passes requests with an administrator session.
//
// When the access token has expired, it is refreshed with the refresh token
// and new cookies are set. If that fails, the session is cleared and deny responds.
//
// # Args
//
// - client: to refresh tokens
//
// - jar
//
// - now: clock to check token expiry
//
// - deny
func AdminGuard(client myhelp.Client, jar session.Jar, now func() time.Time, deny DenyFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, err := jar.Admin(c)
			if err != nil {
				return deny(c)
			}

			if admin.AccessToken != "" && !session.Expired(admin.AccessToken, now()) {
				c.Set(adminTokenKey, admin.AccessToken)
				return next(c)
			}

			if admin.RefreshToken == "" {
				jar.ClearAdmin(c)
				return deny(c)
			}
			tokens, err := client.RefreshTokens(c.Request().Context(), admin.RefreshToken)
			if err != nil || tokens.AccessToken == "" {
				c.Logger().Warnf("refreshing admin token failed: %v", err)
				jar.ClearAdmin(c)
				return deny(c)
			}
			if tokens.RefreshToken == "" {
				tokens.RefreshToken = admin.RefreshToken
			}
			jar.SetAdmin(c, tokens)
			c.Set(adminTokenKey, tokens.AccessToken)
			return next(c)
		}
	}
}

// PatientGuard passes requests with a patient session.
func PatientGuard(jar session.Jar, deny DenyFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := jar.Patient(c)
			if err != nil {
				return deny(c)
			}
			c.Set(patientKey, p)
			return next(c)
		}
	}
}

// adminToken returns the access token passed by AdminGuard.
func adminToken(c echo.Context) string {
	tok, _ := c.Get(adminTokenKey).(string)
	return tok
}

// patientOf returns the session passed by PatientGuard.
func patientOf(c echo.Context) session.Patient {
	p, _ := c.Get(patientKey).(session.Patient)
	return p
}
