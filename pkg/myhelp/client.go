package myhelp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
)

// Client calls the MyHelp API.
//
// Methods taking token send it as a Bearer token. Empty token means anonymous access.
//
// Errors reported by the API are *Error.
type Client interface {
	// GetUser finds a patient account by email.
	//
	// # Returns
	//
	// - polyclinic.UserAccount: the account, including its password hash.
	//
	// - error: *Error. It satisfies errors.Is(err, ErrNotFound) when no account has the email.
	GetUser(ctx context.Context, email string) (polyclinic.UserAccount, error)

	// GetAdmin finds an administrator account by email.
	GetAdmin(ctx context.Context, email string) (polyclinic.AdminAccount, error)

	// Register creates a patient account. Password of reg should be hashed already.
	Register(ctx context.Context, reg polyclinic.Registration) (polyclinic.UserAccount, error)

	// IssuePatientTokens issues tokens for a patient.
	//
	// Password of cred is the hash stored in the account, not the plain password.
	IssuePatientTokens(ctx context.Context, cred polyclinic.Credentials) (polyclinic.Tokens, error)

	// IssueAdminTokens issues tokens for an administrator.
	//
	// Password of cred is the hash stored in the account, not the plain password.
	IssueAdminTokens(ctx context.Context, cred polyclinic.Credentials) (polyclinic.Tokens, error)

	// RefreshTokens issues new tokens in exchange for a refresh token.
	RefreshTokens(ctx context.Context, refreshToken string) (polyclinic.Tokens, error)

	ListSpecializations(ctx context.Context) ([]polyclinic.Specialization, error)
	ListDoctorsBySpecialization(ctx context.Context, token string, specializationID int) ([]polyclinic.Doctor, error)
	CreateSpecialization(ctx context.Context, token string, spec polyclinic.SpecializationSpec) (polyclinic.Specialization, error)
	DeleteSpecialization(ctx context.Context, token string, specializationID int) error

	ListDoctors(ctx context.Context) ([]polyclinic.Doctor, error)
	CreateDoctor(ctx context.Context, token string, spec polyclinic.DoctorSpec) (polyclinic.Doctor, error)
	DeleteDoctor(ctx context.Context, token string, doctorID int) error

	// GetSchedule returns the doctor and the slots of the doctor at the date.
	//
	// # Args
	//
	// - doctorID
	//
	// - date: day in YYYY-MM-DD
	//
	// # Returns
	//
	// - polyclinic.ScheduleInfo
	//
	// - error: *Error. It satisfies errors.Is(err, ErrNotFound) when the doctor is unknown.
	GetSchedule(ctx context.Context, doctorID int, date string) (polyclinic.ScheduleInfo, error)

	// CreateSchedule opens slots of the doctor. Clock times in req are completed to HH:MM:SS.
	CreateSchedule(ctx context.Context, token string, doctorID int, req polyclinic.ScheduleRequest) error

	CreateAppointment(ctx context.Context, token string, req polyclinic.AppointmentRequest) error
	RateAppointment(ctx context.Context, token string, appointmentID int, rating int) error
	CancelAppointment(ctx context.Context, token string, appointmentID int) error

	GetAccount(ctx context.Context, token string, patientID int) (polyclinic.Patient, error)
	UpdateAccount(ctx context.Context, token string, patientID int, profile polyclinic.Profile) (polyclinic.Patient, error)
}

type client struct {
	httpclient *http.Client
	api        string
}

// NewClient creates a Client of the MyHelp API.
//
// # Args
//
// - apiRoot: URL of the server. Paths like "/MyHelp/doctors" are resolved on it.
//
// - timeout: timeout of each request. Zero means no timeout.
func NewClient(apiRoot string, timeout time.Duration) (Client, error) {
	u, err := url.Parse(apiRoot)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("myhelp: api root should be an absolute URL: %s", apiRoot)
	}

	return &client{
		httpclient: &http.Client{Timeout: timeout},
		api:        strings.TrimSuffix(apiRoot, "/"),
	}, nil
}

// build URL with path under /MyHelp
func (c *client) apipath(path ...string) string {
	elems := []string{c.api, "MyHelp"}
	for _, p := range path {
		elems = append(elems, strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/"))
	}
	return strings.Join(elems, "/")
}

// withQuery appends query to URL u.
func withQuery(u string, query url.Values) string {
	if len(query) == 0 {
		return u
	}
	return u + "?" + query.Encode()
}

// do sends a request.
//
// When body is not nil, it is encoded as JSON.
func (c *client) do(ctx context.Context, method string, u string, token string, body any) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpclient.Do(req)
}
