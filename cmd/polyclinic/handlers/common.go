package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apierr "github.com/daariikk/myhelp-web/pkg/api/types/errors"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/daariikk/myhelp-web/pkg/session"
	"github.com/daariikk/myhelp-web/pkg/views"
)

// query keys of flash messages carried over redirects.
const (
	noticeKey = "notice"
	errorKey  = "error"
)

// isAPI reports whether path is served as JSON.
func isAPI(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

// ErrorHandler handles errors returned by handlers.
//
// Errors of /api/... are written as JSON error envelopes. Others are rendered as the error page.
func ErrorHandler(e *echo.Echo, jar session.Jar) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		e.Logger.Error(err)
		if c.Response().Committed {
			return
		}

		he := asHTTPError(err)
		req := c.Request()
		if isAPI(req.URL.Path) || req.Method == http.MethodHead {
			e.DefaultHTTPErrorHandler(he, c)
			return
		}

		page := views.ErrorPage{
			Layout:  frame(c, jar, views.ErrorLabel(he.Code)),
			Code:    he.Code,
			Label:   views.ErrorLabel(he.Code),
			Message: apierr.Reason(he),
		}
		page.Notice, page.Error = "", ""
		if rerr := c.Render(he.Code, views.Error, page); rerr != nil {
			e.Logger.Error(rerr)
		}
	}
}

func asHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	if _, ok := myhelp.AsError(err); ok {
		return apierr.FromBackend(err, "Ошибка сервера")
	}
	return apierr.InternalServerError("Ошибка сервера", err)
}

// frame builds the layout of patient-facing pages.
//
// Flash messages are taken from the query.
func frame(c echo.Context, jar session.Jar, title string) views.Layout {
	_, err := jar.Patient(c)
	return views.Layout{
		Title:         title,
		Authenticated: err == nil,
		Notice:        c.QueryParam(noticeKey),
		Error:         c.QueryParam(errorKey),
	}
}

// adminFrame builds the layout of admin pages.
func adminFrame(c echo.Context, title string) views.Layout {
	return views.Layout{
		Title:     title,
		AdminArea: true,
		Notice:    c.QueryParam(noticeKey),
		Error:     c.QueryParam(errorKey),
	}
}

// seeOther redirects to path, with query.
func seeOther(c echo.Context, path string, query url.Values) error {
	if len(query) != 0 {
		path += "?" + query.Encode()
	}
	return c.Redirect(http.StatusSeeOther, path)
}

// flash builds query to show msg as a notice or an error after redirect.
//
// keep is pairs of key and value to be added, like "tab", "all".
func flash(key string, msg string, keep ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(keep); i += 2 {
		if keep[i+1] != "" {
			q.Set(keep[i], keep[i+1])
		}
	}
	if msg != "" {
		q.Set(key, msg)
	}
	return q
}

// intParam reads a path parameter as a positive integer.
func intParam(c echo.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// backendReason is the message to be shown for an error of the MyHelp API.
func backendReason(err error, fallback string) string {
	return apierr.Reason(apierr.FromBackend(err, fallback))
}
