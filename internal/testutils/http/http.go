package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type RequestOption func(req *http.Request) *http.Request

func WithContext(ctx context.Context) RequestOption {
	return func(req *http.Request) *http.Request {
		return req.WithContext(ctx)
	}
}

func WithHeader(key string, value string, values ...string) RequestOption {
	return func(req *http.Request) *http.Request {
		req.Header.Add(key, value)
		for _, v := range values {
			req.Header.Add(key, v)
		}
		return req
	}
}

// = WithHeader("Content-Type", ctyp)
func ContentType(ctyp string) RequestOption {
	return WithHeader("Content-Type", ctyp)
}

// add cookie to the request.
func WithCookie(name string, value string) RequestOption {
	return func(req *http.Request) *http.Request {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
		return req
	}
}

// carry cookies set by a response over to the request, as a browser does.
//
// Cookies removed by the response are not carried.
func WithCookiesFrom(resp *httptest.ResponseRecorder) RequestOption {
	return func(req *http.Request) *http.Request {
		for _, c := range resp.Result().Cookies() {
			if c.MaxAge < 0 || c.Value == "" {
				continue
			}
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
		return req
	}
}

func newContext(e *echo.Echo, method string, target string, data io.Reader, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, data)
	for _, opt := range reqopts {
		req = opt(req)
	}
	resp := httptest.NewRecorder()

	ctx := e.NewContext(req, resp)
	return ctx, resp
}

func Get(e *echo.Echo, target string, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(e, http.MethodGet, target, nil, reqopts...)
}

func Post(e *echo.Echo, target string, data io.Reader, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(e, http.MethodPost, target, data, reqopts...)
}

// post url-encoded form, as a browser submits <form method="post">.
func PostForm(e *echo.Echo, target string, form url.Values, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	reqopts = append([]RequestOption{ContentType(echo.MIMEApplicationForm)}, reqopts...)
	return Post(e, target, strings.NewReader(form.Encode()), reqopts...)
}

// post JSON text.
func PostJSON(e *echo.Echo, target string, body string, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	reqopts = append([]RequestOption{ContentType(echo.MIMEApplicationJSON)}, reqopts...)
	return Post(e, target, strings.NewReader(body), reqopts...)
}

// File is a file part of multipart form.
type File struct {
	Field   string
	Name    string
	Content []byte
}

// post multipart/form-data with fields and files.
func PostMultipart(
	t *testing.T, e *echo.Echo, target string, fields url.Values, files []File, reqopts ...RequestOption,
) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for k, vs := range fields {
		for _, v := range vs {
			if err := w.WriteField(k, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(f.Content); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	reqopts = append([]RequestOption{ContentType(w.FormDataContentType())}, reqopts...)
	return Post(e, target, buf, reqopts...)
}

func Put(e *echo.Echo, target string, data io.Reader, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(e, http.MethodPut, target, data, reqopts...)
}

func Delete(e *echo.Echo, target string, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(e, http.MethodDelete, target, nil, reqopts...)
}

// send request through routes and middlewares of e.
func Serve(e *echo.Echo, method string, target string, data io.Reader, reqopts ...RequestOption) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, data)
	for _, opt := range reqopts {
		req = opt(req)
	}
	resp := httptest.NewRecorder()
	e.ServeHTTP(resp, req)
	return resp
}
