package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/daariikk/myhelp-web/pkg/echoutil"
	"github.com/daariikk/myhelp-web/pkg/session"
)

// BackendProxy serves /api/myhelp/* by passing requests to /MyHelp/* of the API.
//
// Cookies are not forwarded. The request is authorized with the access token
// of the administrator session if any, or else of the patient session.
//
// # Args
//
// - apiRoot: root URL of the MyHelp API
//
// - client: used to send requests
//
// - jar
func BackendProxy(apiRoot string, client *http.Client, jar session.Jar) echo.HandlerFunc {
	root := strings.TrimSuffix(apiRoot, "/") + "/MyHelp/"
	return func(c echo.Context) error {
		url := root + strings.TrimPrefix(c.Param("*"), "/")
		if rq := c.Request().URL.RawQuery; rq != "" {
			url += "?" + rq
		}

		opts := []echoutil.ProxyOption{
			echoutil.WithClient(client),
			echoutil.DropHeader("Cookie", "Authorization"),
		}
		if token := bearerOf(c, jar); token != "" {
			opts = append(opts, echoutil.SetHeader("Authorization", "Bearer "+token))
		}
		return echoutil.Proxy(c, url, opts...)
	}
}

func bearerOf(c echo.Context, jar session.Jar) string {
	if a, err := jar.Admin(c); err == nil && a.AccessToken != "" {
		return a.AccessToken
	}
	if p, err := jar.Patient(c); err == nil {
		return p.AccessToken
	}
	return ""
}
