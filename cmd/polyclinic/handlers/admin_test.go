package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/daariikk/myhelp-web/cmd/polyclinic/handlers"
	httptestutil "github.com/daariikk/myhelp-web/internal/testutils/http"
	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/daariikk/myhelp-web/pkg/myhelp/mock"
	"github.com/daariikk/myhelp-web/pkg/session"
	"github.com/daariikk/myhelp-web/pkg/utils/try"
)

func TestAdminLoginAPIHandler(t *testing.T) {
	type When struct {
		contentType string
		body        string
		admin       polyclinic.AdminAccount
		adminErr    error
		tokensErr   error
	}
	type Then struct {
		code    int
		message string
	}

	hash := hashOf(t, "admin-pass")
	lifetime := polyclinic.Lifetime{Time: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.GetAdmin = func(ctx context.Context, email string) (polyclinic.AdminAccount, error) {
				return when.admin, when.adminErr
			}
			client.Impl.IssueAdminTokens = func(ctx context.Context, cred polyclinic.Credentials) (polyclinic.Tokens, error) {
				if when.tokensErr != nil {
					return polyclinic.Tokens{}, when.tokensErr
				}
				return polyclinic.Tokens{
					AdminID: 1, AccessToken: "admin-access", AccessLifetime: lifetime,
					RefreshToken: "admin-refresh", RefreshLifetime: lifetime,
				}, nil
			}

			e := newEcho(t)
			c, rec := httptestutil.Post(
				e, "/api/admin/login", strings.NewReader(when.body),
				httptestutil.ContentType(when.contentType),
			)
			serve(e, c, handlers.AdminLoginAPIHandler(client, session.Jar{}))

			if rec.Code != then.code {
				t.Fatalf("status code: want %d, got %d (%s)", then.code, rec.Code, rec.Body.String())
			}

			if then.code != http.StatusOK {
				got := polyclinic.RawEnvelope{}
				if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
					t.Fatal(err)
				}
				if got.Message != then.message {
					t.Errorf("message: want %q, got %q", then.message, got.Message)
				}
				if _, ok := cookieOf(rec, session.AdminAccessCookie); ok {
					t.Error("admin cookie should not be set")
				}
				return
			}

			got := polyclinic.Envelope[handlers.AdminLoginResponse]{}
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			want := handlers.AdminLoginResponse{
				ID: 1, Email: "admin@example.com", AccessToken: "admin-access", RefreshToken: "admin-refresh",
			}
			if got.Data != want {
				t.Errorf("data: want %+v, got %+v", want, got.Data)
			}
			access, ok := cookieOf(rec, session.AdminAccessCookie)
			if !ok || access.Value != "admin-access" || access.SameSite != http.SameSiteStrictMode || !access.Expires.Equal(lifetime.Time) {
				t.Errorf("adminAuth cookie: %+v", access)
			}
			if refresh, ok := cookieOf(rec, session.AdminRefreshCookie); !ok || refresh.Value != "admin-refresh" {
				t.Errorf("adminRefresh cookie: %+v", refresh)
			}
		}
	}

	admin := polyclinic.AdminAccount{ID: 1, Email: "admin@example.com", Password: hash, IsActive: true}

	t.Run("it logs in", theory(
		When{
			contentType: "application/json; charset=utf-8",
			body:        `{"email":"admin@example.com","password":"admin-pass"}`,
			admin:       admin,
		},
		Then{code: http.StatusOK},
	))
	t.Run("content type should be json", theory(
		When{contentType: "text/plain", body: `{"email":"admin@example.com","password":"admin-pass"}`},
		Then{code: http.StatusBadRequest, message: "Неверный Content-Type"},
	))
	t.Run("body should be json", theory(
		When{contentType: "application/json", body: `email=admin`},
		Then{code: http.StatusBadRequest, message: "Невалидный JSON"},
	))
	t.Run("email and password are required", theory(
		When{contentType: "application/json", body: `{"email":"admin@example.com"}`},
		Then{code: http.StatusBadRequest, message: "Необходимы email и password"},
	))
	t.Run("failed lookup is unauthorized", theory(
		When{
			contentType: "application/json",
			body:        `{"email":"admin@example.com","password":"admin-pass"}`,
			adminErr:    &myhelp.Error{StatusCode: http.StatusNotFound},
		},
		Then{code: http.StatusUnauthorized, message: "Ошибка при запросе данных администратора"},
	))
	t.Run("error envelope of lookup is unauthorized", theory(
		When{
			contentType: "application/json",
			body:        `{"email":"admin@example.com","password":"admin-pass"}`,
			adminErr:    &myhelp.Error{StatusCode: http.StatusOK, Message: "inactive"},
		},
		Then{code: http.StatusUnauthorized, message: "Администратор не найден или неактивен"},
	))
	t.Run("wrong password is unauthorized", theory(
		When{
			contentType: "application/json",
			body:        `{"email":"admin@example.com","password":"wrong"}`,
			admin:       admin,
		},
		Then{code: http.StatusUnauthorized, message: "Неверные учетные данные"},
	))
	t.Run("failure of token issue", theory(
		When{
			contentType: "application/json",
			body:        `{"email":"admin@example.com","password":"admin-pass"}`,
			admin:       admin,
			tokensErr:   errors.New("connection reset"),
		},
		Then{code: http.StatusInternalServerError, message: "Ошибка при получении токенов"},
	))
}

func TestAdminLogout(t *testing.T) {
	for name, h := range map[string]echo.HandlerFunc{
		"api":  handlers.AdminLogoutAPIHandler(session.Jar{}),
		"form": handlers.AdminLogoutFormHandler(session.Jar{}),
	} {
		t.Run(name+" clears both admin cookies", func(t *testing.T) {
			e := newEcho(t)
			c, rec := httptestutil.Post(
				e, "/api/admin/logout", nil,
				withAdmin("admin-access"), httptestutil.WithCookie(session.AdminRefreshCookie, "admin-refresh"),
			)
			if err := serve(e, c, h); err != nil {
				t.Fatal(err)
			}
			for _, name := range []string{session.AdminAccessCookie, session.AdminRefreshCookie} {
				if ck, ok := cookieOf(rec, name); !ok || ck.MaxAge >= 0 {
					t.Errorf("cookie %s is not cleared: %+v", name, ck)
				}
			}
		})
	}
}

func TestAdminLoginForm(t *testing.T) {
	hash := hashOf(t, "admin-pass")

	t.Run("success leads to the dashboard", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.GetAdmin = func(ctx context.Context, email string) (polyclinic.AdminAccount, error) {
			return polyclinic.AdminAccount{ID: 1, Email: email, Password: hash}, nil
		}
		client.Impl.IssueAdminTokens = func(ctx context.Context, cred polyclinic.Credentials) (polyclinic.Tokens, error) {
			return polyclinic.Tokens{AccessToken: "admin-access", RefreshToken: "admin-refresh"}, nil
		}

		e := newEcho(t)
		c, rec := httptestutil.PostForm(e, "/polyclinic/admin/auth", url.Values{
			"email": {"admin@example.com"}, "password": {"admin-pass"},
		})
		if err := serve(e, c, handlers.AdminLoginFormHandler(client, session.Jar{})); err != nil {
			t.Fatal(err)
		}
		if path, _ := location(t, rec); path != "/polyclinic/admin" {
			t.Errorf("redirect: %s", path)
		}
		if _, ok := cookieOf(rec, session.AdminAccessCookie); !ok {
			t.Error("admin cookie is not set")
		}
	})

	t.Run("failure is shown in the form", func(t *testing.T) {
		client := mock.New(t)
		e := newEcho(t)
		c, rec := httptestutil.PostForm(e, "/polyclinic/admin/auth", url.Values{"email": {"admin@example.com"}})
		if err := serve(e, c, handlers.AdminLoginFormHandler(client, session.Jar{})); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status code: %d", rec.Code)
		}
		assertContains(t, rec.Body.String(), "Необходимы email и password", "Авторизация администратора")
	})
}

func jwtExpiring(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	return try.To(tok.SignedString([]byte("test-secret"))).OrFatal(t)
}

func TestAdminGuard(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	fresh := jwtExpiring(t, now.Add(time.Hour))
	stale := jwtExpiring(t, now.Add(-time.Minute))

	type When struct {
		cookies    []httptestutil.RequestOption
		refreshed  polyclinic.Tokens
		refreshErr error
	}
	type Then struct {
		passed    bool
		token     string
		refreshed []string
		cookie    string
		cleared   bool
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.RefreshTokens = func(ctx context.Context, refreshToken string) (polyclinic.Tokens, error) {
				return when.refreshed, when.refreshErr
			}
			client.Impl.CreateSpecialization = func(ctx context.Context, token string, spec polyclinic.SpecializationSpec) (polyclinic.Specialization, error) {
				return polyclinic.Specialization{}, nil
			}

			e := newEcho(t)
			c, rec := httptestutil.PostForm(
				e, "/polyclinic/admin/specializations",
				url.Values{"specialization": {"ЛОР"}, "specialization_doctor": {"Оториноларинголог"}},
				when.cookies...,
			)
			guard := handlers.AdminGuard(client, session.Jar{}, clock, handlers.RedirectTo("/polyclinic/admin/auth"))
			if err := serve(e, c, handlers.CreateSpecializationHandler(client), guard); err != nil {
				t.Fatal(err)
			}

			path, _ := location(t, rec)
			if then.passed {
				if path != "/polyclinic/admin" || len(client.Calls.CreateSpecialization) != 1 {
					t.Fatalf("request is not passed: %s, %+v", path, client.Calls.CreateSpecialization)
				}
				if got := client.Calls.CreateSpecialization[0].Token; got != then.token {
					t.Errorf("token: want %q, got %q", then.token, got)
				}
			} else if path != "/polyclinic/admin/auth" || len(client.Calls.CreateSpecialization) != 0 {
				t.Errorf("request is not denied: %s", path)
			}

			if len(client.Calls.RefreshTokens) != len(then.refreshed) {
				t.Errorf("RefreshTokens: %v", client.Calls.RefreshTokens)
			}
			ck, ok := cookieOf(rec, session.AdminAccessCookie)
			switch {
			case then.cookie != "" && (!ok || ck.Value != then.cookie):
				t.Errorf("adminAuth cookie: %+v", ck)
			case then.cleared && (!ok || ck.MaxAge >= 0):
				t.Errorf("adminAuth cookie is not cleared: %+v", ck)
			}
		}
	}

	t.Run("fresh access token passes", theory(
		When{cookies: []httptestutil.RequestOption{withAdmin(fresh)}},
		Then{passed: true, token: fresh},
	))
	t.Run("token with unknown expiry passes", theory(
		When{cookies: []httptestutil.RequestOption{withAdmin("opaque")}},
		Then{passed: true, token: "opaque"},
	))
	t.Run("stale access token is refreshed", theory(
		When{
			cookies: []httptestutil.RequestOption{
				withAdmin(stale), httptestutil.WithCookie(session.AdminRefreshCookie, "refresh"),
			},
			refreshed: polyclinic.Tokens{AccessToken: fresh, RefreshToken: "refresh-2"},
		},
		Then{passed: true, token: fresh, refreshed: []string{"refresh"}, cookie: fresh},
	))
	t.Run("expired access cookie is refreshed", theory(
		When{
			cookies:   []httptestutil.RequestOption{httptestutil.WithCookie(session.AdminRefreshCookie, "refresh")},
			refreshed: polyclinic.Tokens{AccessToken: fresh},
		},
		Then{passed: true, token: fresh, refreshed: []string{"refresh"}, cookie: fresh},
	))
	t.Run("failed refresh clears the session", theory(
		When{
			cookies: []httptestutil.RequestOption{
				withAdmin(stale), httptestutil.WithCookie(session.AdminRefreshCookie, "refresh"),
			},
			refreshErr: &myhelp.Error{StatusCode: http.StatusUnauthorized},
		},
		Then{refreshed: []string{"refresh"}, cleared: true},
	))
	t.Run("stale token without refresh token is denied", theory(
		When{cookies: []httptestutil.RequestOption{withAdmin(stale)}},
		Then{cleared: true},
	))
	t.Run("no session is denied", theory(
		When{},
		Then{},
	))

	t.Run("JSON routes are answered with 401", func(t *testing.T) {
		client := mock.New(t)
		e := newEcho(t)
		c, rec := httptestutil.Post(e, "/api/photo", nil)
		guard := handlers.AdminGuard(client, session.Jar{}, clock, handlers.Unauthorized)
		serve(e, c, func(c echo.Context) error {
			t.Error("handler should not be called")
			return nil
		}, guard)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status code: %d", rec.Code)
		}
		assertContains(t, rec.Body.String(), `"status":"error"`)
	})
}
