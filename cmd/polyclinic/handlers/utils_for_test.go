package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daariikk/myhelp-web/cmd/polyclinic/handlers"
	httptestutil "github.com/daariikk/myhelp-web/internal/testutils/http"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/daariikk/myhelp-web/pkg/password"
	"github.com/daariikk/myhelp-web/pkg/session"
	"github.com/daariikk/myhelp-web/pkg/utils/try"
	"github.com/daariikk/myhelp-web/pkg/views"
)

// newEcho returns echo with renderer and error handler, as the server has.
func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	e.Renderer = try.To(views.New()).OrFatal(t)
	e.HTTPErrorHandler = handlers.ErrorHandler(e, session.Jar{})
	return e
}

// serve calls handler behind middlewares, and lets e handle its error.
func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc, m ...echo.MiddlewareFunc) error {
	for i := len(m) - 1; 0 <= i; i-- {
		h = m[i](h)
	}
	err := h(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return err
}

func withParams(c echo.Context, kv ...string) echo.Context {
	names, values := []string{}, []string{}
	for i := 0; i+1 < len(kv); i += 2 {
		names = append(names, kv[i])
		values = append(values, kv[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

// withPatient sends cookies of a patient session.
func withPatient(t *testing.T, p session.Patient) httptestutil.RequestOption {
	t.Helper()
	c, rec := httptestutil.Get(echo.New(), "/")
	if err := (session.Jar{}).SetPatient(c, p); err != nil {
		t.Fatal(err)
	}
	return httptestutil.WithCookiesFrom(rec)
}

// withAdmin sends an access token cookie of administrator.
func withAdmin(token string) httptestutil.RequestOption {
	return httptestutil.WithCookie(session.AdminAccessCookie, token)
}

var patient = session.Patient{PatientID: 7, AccessToken: "patient-access", RefreshToken: "patient-refresh"}

func patientGuard() echo.MiddlewareFunc {
	return handlers.PatientGuard(session.Jar{}, handlers.RedirectTo("/polyclinic/auth"))
}

// adminGuard passes tokens which are not JWT, since their expiry is unknown.
func adminGuard(client myhelp.Client) echo.MiddlewareFunc {
	return handlers.AdminGuard(client, session.Jar{}, time.Now, handlers.RedirectTo("/polyclinic/admin/auth"))
}

func hashOf(t *testing.T, plain string) string {
	t.Helper()
	return try.To(password.Hash(plain, 4)).OrFatal(t)
}

// location returns path and query of the redirect.
func location(t *testing.T, rec *httptest.ResponseRecorder) (string, url.Values) {
	t.Helper()
	if rec.Code != http.StatusSeeOther && rec.Code != http.StatusFound {
		t.Fatalf("not redirected: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	u := try.To(url.Parse(rec.Header().Get(echo.HeaderLocation))).OrFatal(t)
	return u.Path, u.Query()
}

func cookieOf(rec *httptest.ResponseRecorder, name string) (*http.Cookie, bool) {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("%q is not in body:\n%s", w, body)
		}
	}
}
