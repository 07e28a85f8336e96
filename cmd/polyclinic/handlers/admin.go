package handlers

import (
	"context"
	"mime"
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

// AdminLoginResponse is the data of a successful admin login.
type AdminLoginResponse struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// loginAdmin checks the credential and issues tokens for the administrator.
//
// Errors are *echo.HTTPError.
func loginAdmin(ctx context.Context, client myhelp.Client, cred polyclinic.Credentials) (polyclinic.AdminAccount, polyclinic.Tokens, error) {
	if cred.Email == "" || cred.Password == "" {
		return polyclinic.AdminAccount{}, polyclinic.Tokens{}, apierr.BadRequest("Необходимы email и password", nil)
	}

	admin, err := client.GetAdmin(ctx, cred.Email)
	if err != nil {
		merr, ok := myhelp.AsError(err)
		switch {
		case !ok:
			return polyclinic.AdminAccount{}, polyclinic.Tokens{}, apierr.BadGateway(err)
		case merr.Enveloped():
			return polyclinic.AdminAccount{}, polyclinic.Tokens{}, apierr.Unauthorized("Администратор не найден или неактивен", err)
		default:
			return polyclinic.AdminAccount{}, polyclinic.Tokens{}, apierr.Unauthorized("Ошибка при запросе данных администратора", err)
		}
	}

	if !password.Compare(cred.Password, admin.Password) {
		return polyclinic.AdminAccount{}, polyclinic.Tokens{}, apierr.Unauthorized("Неверные учетные данные", nil)
	}

	tokens, err := client.IssueAdminTokens(ctx, polyclinic.Credentials{
		Email: cred.Email, Password: admin.Password,
	})
	if err != nil {
		return polyclinic.AdminAccount{}, polyclinic.Tokens{}, apierr.InternalServerError("Ошибка при получении токенов", err)
	}
	return admin, tokens, nil
}

// AdminLoginAPIHandler serves POST /api/admin/login.
func AdminLoginAPIHandler(client myhelp.Client, jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctyp, _, _ := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
		if !strings.EqualFold(ctyp, echo.MIMEApplicationJSON) {
			return apierr.BadRequest("Неверный Content-Type", nil)
		}

		cred := polyclinic.Credentials{}
		if err := decodeJSON(c, &cred); err != nil {
			return err
		}

		admin, tokens, err := loginAdmin(c.Request().Context(), client, cred)
		if err != nil {
			return err
		}

		jar.SetAdmin(c, tokens)
		return c.JSON(http.StatusOK, polyclinic.Success(AdminLoginResponse{
			ID:           admin.ID,
			Email:        admin.Email,
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		}))
	}
}

// AdminLogoutAPIHandler serves POST /api/admin/logout.
func AdminLogoutAPIHandler(jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		jar.ClearAdmin(c)
		return c.JSON(http.StatusOK, polyclinic.Envelope[any]{Status: polyclinic.StatusSuccess})
	}
}

// AdminLoginPageHandler serves GET /polyclinic/admin/auth.
func AdminLoginPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, views.AdminLogin, views.AdminLoginPage{
			Layout: views.Layout{Title: "Вход администратора", Error: c.QueryParam(errorKey)},
		})
	}
}

// AdminLoginFormHandler serves POST /polyclinic/admin/auth.
func AdminLoginFormHandler(client myhelp.Client, jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		cred := polyclinic.Credentials{}
		if err := c.Bind(&cred); err != nil {
			return apierr.BadRequest("Некорректные данные формы", err)
		}
		cred.Email = strings.TrimSpace(cred.Email)

		_, tokens, err := loginAdmin(c.Request().Context(), client, cred)
		if err != nil {
			he := asHTTPError(err)
			page := views.AdminLoginPage{Layout: views.Layout{
				Title: "Вход администратора", Error: apierr.Reason(he),
			}, Email: cred.Email}
			return c.Render(he.Code, views.AdminLogin, page)
		}

		jar.SetAdmin(c, tokens)
		return seeOther(c, "/polyclinic/admin", nil)
	}
}

// AdminLogoutFormHandler serves POST /polyclinic/admin/logout.
func AdminLogoutFormHandler(jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		jar.ClearAdmin(c)
		return seeOther(c, "/polyclinic/admin/auth", nil)
	}
}
