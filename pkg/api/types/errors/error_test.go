package errors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apierr "github.com/daariikk/myhelp-web/pkg/api/types/errors"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/labstack/echo/v4"
)

func TestErrorMessage(t *testing.T) {
	t.Run("it is serialized as error envelope", func(t *testing.T) {
		cause := errors.New("fake")
		he := apierr.Unauthorized("Неверный пароль", cause)

		if he.Code != http.StatusUnauthorized {
			t.Errorf("code: %d", he.Code)
		}
		if !errors.Is(he.Internal, cause) {
			t.Errorf("cause is lost: %v", he.Internal)
		}

		b, err := json.Marshal(he.Message)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != `{"status":"error","message":"Неверный пароль"}` {
			t.Errorf("unexpected json: %s", b)
		}
	})

	t.Run("echo writes it as JSON body", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), rec)

		e.DefaultHTTPErrorHandler(apierr.BadRequest("Невалидный JSON", nil), c)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: %d", rec.Code)
		}
		got := apierr.ErrorMessage{}
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if got.Reason != "Невалидный JSON" {
			t.Errorf("reason: %s", got.Reason)
		}
	})

	t.Run("unmarshalling requires message", func(t *testing.T) {
		got := apierr.ErrorMessage{}
		if err := json.Unmarshal([]byte(`{"status":"error"}`), &got); err == nil {
			t.Error("error is expected")
		}
	})

	t.Run("Reason reads messages of any error", func(t *testing.T) {
		for err, want := range map[error]string{
			apierr.NotFound("Врач не найден"):             "Врач не найден",
			echo.NewHTTPError(http.StatusTeapot, "teapot"): "teapot",
			errors.New("plain"):                            "plain",
		} {
			if got := apierr.Reason(err); got != want {
				t.Errorf("want %q, got %q", want, got)
			}
		}
	})

	t.Run("relayed status below 400 becomes 500", func(t *testing.T) {
		if he := apierr.WithStatus(http.StatusOK, "x", nil); he.Code != http.StatusInternalServerError {
			t.Errorf("code: %d", he.Code)
		}
		if he := apierr.WithStatus(http.StatusConflict, "x", nil); he.Code != http.StatusConflict {
			t.Errorf("code: %d", he.Code)
		}
	})
}

func TestFromBackend(t *testing.T) {
	type When struct {
		err      error
		fallback string
	}
	type Then struct {
		code   int
		reason string
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			he := apierr.FromBackend(when.err, when.fallback)
			if he.Code != then.code {
				t.Errorf("code: want %d, got %d", then.code, he.Code)
			}
			if got := apierr.Reason(he); got != then.reason {
				t.Errorf("reason: want %q, got %q", then.reason, got)
			}
			if !errors.Is(he, when.err) && !errors.Is(he.Internal, when.err) {
				t.Errorf("cause is lost: %v", he.Internal)
			}
		}
	}

	t.Run("backend status and message are relayed", theory(
		When{
			err:      &myhelp.Error{StatusCode: http.StatusConflict, Message: "Пользователь уже существует"},
			fallback: "Ошибка регистрации",
		},
		Then{code: http.StatusConflict, reason: "Пользователь уже существует"},
	))
	t.Run("fallback is used when backend says nothing", theory(
		When{
			err:      &myhelp.Error{StatusCode: http.StatusBadRequest},
			fallback: "Ошибка регистрации",
		},
		Then{code: http.StatusBadRequest, reason: "Ошибка регистрации"},
	))
	t.Run("error envelope in success response becomes 500", theory(
		When{
			err:      &myhelp.Error{StatusCode: http.StatusOK, Message: "failed"},
			fallback: "x",
		},
		Then{code: http.StatusInternalServerError, reason: "failed"},
	))
	t.Run("network error becomes 502", theory(
		When{err: errors.New("connection refused"), fallback: "x"},
		Then{code: http.StatusBadGateway, reason: "Сервис временно недоступен"},
	))

	t.Run("nil is nil", func(t *testing.T) {
		if he := apierr.FromBackend(nil, "x"); he != nil {
			t.Errorf("unexpected: %v", he)
		}
	})
}
