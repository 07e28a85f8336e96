// Package session keeps authentication of patients and administrators in cookies.
//
// A patient session lives in two cookies: "session" holds the patient id and
// both tokens, "access_token" holds the access token alone.
// An administrator session lives in "adminAuth" (access token) and
// "adminRefresh" (refresh token), each expiring with its token.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
	"github.com/labstack/echo/v4"
)

const (
	PatientCookie      = "session"
	AccessTokenCookie  = "access_token"
	AdminAccessCookie  = "adminAuth"
	AdminRefreshCookie = "adminRefresh"
)

// ErrNoSession is returned when the request carries no (readable) session.
var ErrNoSession = errors.New("no session")

// Patient is the session of a patient.
type Patient struct {
	PatientID    int    `json:"patientID"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// PatientOf builds a patient session from tokens issued for the patient.
func PatientOf(t polyclinic.Tokens) Patient {
	return Patient{
		PatientID:    t.PatientID,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	}
}

// Admin is the session of an administrator.
//
// AccessToken is empty when the access cookie has expired but the refresh cookie survives.
type Admin struct {
	AccessToken  string
	RefreshToken string
}

// Jar reads and writes session cookies.
type Jar struct {
	// Secure marks cookies to be sent over HTTPS only.
	Secure bool
}

func (j Jar) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j Jar) expired(name string) *http.Cookie {
	c := j.cookie(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}

// SetPatient writes cookies of the patient session.
func (j Jar) SetPatient(c echo.Context, p Patient) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	c.SetCookie(j.cookie(PatientCookie, base64.RawURLEncoding.EncodeToString(b)))
	c.SetCookie(j.cookie(AccessTokenCookie, p.AccessToken))
	return nil
}

// Patient reads the patient session.
//
// # Returns
//
// - Patient
//
// - error: ErrNoSession when the cookie is missing or broken.
func (j Jar) Patient(c echo.Context) (Patient, error) {
	ck, err := c.Cookie(PatientCookie)
	if err != nil || ck.Value == "" {
		return Patient{}, ErrNoSession
	}
	b, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return Patient{}, ErrNoSession
	}
	p := Patient{}
	if err := json.Unmarshal(b, &p); err != nil || p.AccessToken == "" {
		return Patient{}, ErrNoSession
	}
	return p, nil
}

// ClearPatient removes cookies of the patient session.
func (j Jar) ClearPatient(c echo.Context) {
	c.SetCookie(j.expired(PatientCookie))
	c.SetCookie(j.expired(AccessTokenCookie))
}

// SetAdmin writes cookies of the administrator session.
//
// Each cookie expires with its token. Unknown lifetime makes a browser-session cookie.
func (j Jar) SetAdmin(c echo.Context, t polyclinic.Tokens) {
	access := j.cookie(AdminAccessCookie, t.AccessToken)
	access.SameSite = http.SameSiteStrictMode
	if !t.AccessLifetime.IsZero() {
		access.Expires = t.AccessLifetime.Time
	}
	c.SetCookie(access)

	if t.RefreshToken == "" {
		return
	}
	refresh := j.cookie(AdminRefreshCookie, t.RefreshToken)
	refresh.SameSite = http.SameSiteStrictMode
	if !t.RefreshLifetime.IsZero() {
		refresh.Expires = t.RefreshLifetime.Time
	}
	c.SetCookie(refresh)
}

// Admin reads the administrator session.
//
// It returns ErrNoSession when neither access nor refresh cookie is present.
func (j Jar) Admin(c echo.Context) (Admin, error) {
	a := Admin{}
	if ck, err := c.Cookie(AdminAccessCookie); err == nil {
		a.AccessToken = ck.Value
	}
	if ck, err := c.Cookie(AdminRefreshCookie); err == nil {
		a.RefreshToken = ck.Value
	}
	if a.AccessToken == "" && a.RefreshToken == "" {
		return Admin{}, ErrNoSession
	}
	return a, nil
}

// ClearAdmin removes cookies of the administrator session.
func (j Jar) ClearAdmin(c echo.Context) {
	for _, name := range []string{AdminAccessCookie, AdminRefreshCookie} {
		ck := j.expired(name)
		ck.SameSite = http.SameSiteStrictMode
		c.SetCookie(ck)
	}
}
