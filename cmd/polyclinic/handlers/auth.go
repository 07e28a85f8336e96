package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apierr "github.com/daariikk/myhelp-web/pkg/api/types/errors"
	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/daariikk/myhelp-web/pkg/password"
	"github.com/daariikk/myhelp-web/pkg/session"
	"github.com/daariikk/myhelp-web/pkg/views"
)

// loginPatient checks the credential and issues tokens for the patient.
//
// Errors are *echo.HTTPError.
func loginPatient(ctx context.Context, client myhelp.Client, cred polyclinic.Credentials) (polyclinic.Tokens, error) {
	user, err := client.GetUser(ctx, cred.Email)
	if err != nil {
		if _, ok := myhelp.AsError(err); ok {
			return polyclinic.Tokens{}, apierr.Unauthorized("Пользователь не найден", err)
		}
		return polyclinic.Tokens{}, apierr.BadGateway(err)
	}

	if !password.Compare(cred.Password, user.Password) {
		return polyclinic.Tokens{}, apierr.Unauthorized("Неверный пароль", nil)
	}

	// the backend issues tokens in exchange for the stored hash.
	tokens, err := client.IssuePatientTokens(ctx, polyclinic.Credentials{
		Email: cred.Email, Password: user.Password,
	})
	if err != nil {
		return polyclinic.Tokens{}, apierr.InternalServerError("Ошибка при получении токенов", err)
	}
	return tokens, nil
}

// register hashes the password and signs up the patient.
func register(ctx context.Context, client myhelp.Client, cost int, reg polyclinic.Registration) (polyclinic.UserAccount, error) {
	hash, err := password.Hash(reg.Password, cost)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return polyclinic.UserAccount{}, apierr.BadRequest("Пароль слишком длинный", err)
		}
		return polyclinic.UserAccount{}, apierr.InternalServerError("Ошибка регистрации", err)
	}
	reg.Password = hash

	account, err := client.Register(ctx, reg)
	if err != nil {
		return polyclinic.UserAccount{}, apierr.FromBackend(err, "Ошибка регистрации")
	}
	return account, nil
}

func decodeJSON(c echo.Context, v any) error {
	if err := json.NewDecoder(c.Request().Body).Decode(v); err != nil {
		return apierr.BadRequest("Невалидный JSON", err)
	}
	return nil
}

// LoginAPIHandler serves POST /api/auth/login.
func LoginAPIHandler(client myhelp.Client, jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		cred := polyclinic.Credentials{}
		if err := decodeJSON(c, &cred); err != nil {
			return err
		}

		tokens, err := loginPatient(c.Request().Context(), client, cred)
		if err != nil {
			return err
		}

		p := session.PatientOf(tokens)
		if err := jar.SetPatient(c, p); err != nil {
			return apierr.InternalServerError("Внутренняя ошибка сервера", err)
		}
		return c.JSON(http.StatusOK, polyclinic.SuccessWithMessage("Авторизация успешна", p))
	}
}

// RegisterAPIHandler serves POST /api/auth/register.
func RegisterAPIHandler(client myhelp.Client, cost int) echo.HandlerFunc {
	return func(c echo.Context) error {
		reg := polyclinic.Registration{}
		if err := decodeJSON(c, &reg); err != nil {
			return err
		}

		account, err := register(c.Request().Context(), client, cost, reg)
		if err != nil {
			return err
		}
		account.Password = ""
		return c.JSON(http.StatusOK, polyclinic.SuccessWithMessage("Регистрация успешна", account))
	}
}

// LogoutAPIHandler serves POST /api/auth/logout.
func LogoutAPIHandler(jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		jar.ClearPatient(c)
		return c.JSON(http.StatusOK, polyclinic.Envelope[any]{
			Status: polyclinic.StatusSuccess, Message: "Logged out",
		})
	}
}

// CheckAPIHandler serves GET /api/auth/check.
func CheckAPIHandler(jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := jar.Patient(c)
		if err != nil {
			return apierr.Unauthorized("Не авторизован", err)
		}
		return c.JSON(http.StatusOK, polyclinic.Success(p))
	}
}

// LoginPageHandler serves GET /polyclinic/auth.
func LoginPageHandler(jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, views.Login, views.LoginPage{
			Layout: frame(c, jar, "Вход"),
			Email:  c.QueryParam("email"),
		})
	}
}

// LoginFormHandler serves POST /polyclinic/auth.
func LoginFormHandler(client myhelp.Client, jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		cred := polyclinic.Credentials{}
		if err := c.Bind(&cred); err != nil {
			return apierr.BadRequest("Некорректные данные формы", err)
		}
		cred.Email = strings.TrimSpace(cred.Email)

		tokens, err := loginPatient(c.Request().Context(), client, cred)
		if err != nil {
			he := asHTTPError(err)
			page := views.LoginPage{Layout: frame(c, jar, "Вход"), Email: cred.Email}
			page.Notice, page.Error = "", apierr.Reason(he)
			return c.Render(he.Code, views.Login, page)
		}

		if err := jar.SetPatient(c, session.PatientOf(tokens)); err != nil {
			return apierr.InternalServerError("Внутренняя ошибка сервера", err)
		}
		return seeOther(c, "/polyclinic/auth/account", nil)
	}
}

// LogoutFormHandler serves POST /polyclinic/auth/logout.
func LogoutFormHandler(jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		jar.ClearPatient(c)
		return seeOther(c, "/polyclinic/auth", nil)
	}
}

// RegisterPageHandler serves GET /polyclinic/auth/register.
func RegisterPageHandler(jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, views.Register, views.RegisterPage{
			Layout: frame(c, jar, "Регистрация"),
		})
	}
}

// RegisterFormHandler serves POST /polyclinic/auth/register.
//
// The user agreement should be accepted.
func RegisterFormHandler(client myhelp.Client, jar session.Jar, cost int) echo.HandlerFunc {
	return func(c echo.Context) error {
		reg := polyclinic.Registration{}
		if err := c.Bind(&reg); err != nil {
			return apierr.BadRequest("Некорректные данные формы", err)
		}

		fail := func(code int, reason string) error {
			form := reg
			form.Password = ""
			page := views.RegisterPage{Layout: frame(c, jar, "Регистрация"), Form: form}
			page.Notice, page.Error = "", reason
			return c.Render(code, views.Register, page)
		}

		if !reg.Agreed {
			return fail(http.StatusBadRequest, "Для продолжения необходимо принять пользовательское соглашение")
		}

		if _, err := register(c.Request().Context(), client, cost, reg); err != nil {
			he := asHTTPError(err)
			return fail(he.Code, apierr.Reason(he))
		}
		return seeOther(c, "/polyclinic/auth", flash(noticeKey, "Регистрация успешна", "email", reg.Email))
	}
}
