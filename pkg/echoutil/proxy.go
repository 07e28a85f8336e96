package echoutil

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apierr "github.com/daariikk/myhelp-web/pkg/api/types/errors"
)

// hop-by-hop headers, which are not forwarded.
var hopByHop = []string{
	"Connection", "Keep-Alive", "Proxy-Authenticate", "Proxy-Authorization",
	"Te", "Trailer", "Transfer-Encoding", "Upgrade", "Host",
}

type proxyConfig struct {
	client *http.Client
	drop   []string
	set    http.Header
}

type ProxyOption func(*proxyConfig)

// WithClient sends requests to the backend with the client. Default is http.DefaultClient.
func WithClient(client *http.Client) ProxyOption {
	return func(pc *proxyConfig) {
		pc.client = client
	}
}

// DropHeader stops request headers named so from being forwarded.
func DropHeader(names ...string) ProxyOption {
	return func(pc *proxyConfig) {
		pc.drop = append(pc.drop, names...)
	}
}

// SetHeader sets a request header sent to the backend, replacing the original one.
func SetHeader(name string, value string) ProxyOption {
	return func(pc *proxyConfig) {
		pc.set.Set(name, value)
	}
}

// Proxy forwards the request to url and copies the response back.
//
// When the backend is unreachable, it returns 502 as *echo.HTTPError and writes nothing.
func Proxy(c echo.Context, url string, opts ...ProxyOption) error {
	pc := &proxyConfig{client: http.DefaultClient, set: http.Header{}}
	for _, opt := range opts {
		opt(pc)
	}

	src := c.Request()
	req, err := http.NewRequestWithContext(src.Context(), src.Method, url, src.Body)
	if err != nil {
		return apierr.InternalServerError("Внутренняя ошибка сервера", err)
	}
	req.ContentLength = src.ContentLength

	CopyHeader(&req.Header, &src.Header, append(pc.drop, hopByHop...)...)
	for k, vs := range pc.set {
		req.Header[k] = vs
	}

	resp, err := pc.client.Do(req)
	if err != nil {
		return apierr.BadGateway(err)
	}
	defer resp.Body.Close()

	return CopyResponse(c, resp)
}

func CopyHeader(dest *http.Header, src *http.Header, except ...string) {
	// convert []string to set
	exc := map[string]interface{}{}

	for _, x := range except {
		exc[strings.ToLower(x)] = nil
	}

	for k, vs := range *src {
		if _, ok := exc[strings.ToLower(k)]; ok {
			// this header marked not to be copied
			continue
		}
		for _, v := range vs {
			dest.Add(k, v)
		}
	}
}

// CopyResponse writes resp as the response of c.
//
// Chunked responses are flushed chunk by chunk.
func CopyResponse(c echo.Context, resp *http.Response) error {
	ctx := c.Request().Context()

	dstResp := c.Response()
	dstHeader := dstResp.Header()
	CopyHeader(&dstHeader, &resp.Header, hopByHop...)

	chunked := false
	for _, te := range resp.TransferEncoding {
		if strings.EqualFold(te, "chunked") {
			chunked = true
		}
	}

	dstResp.WriteHeader(resp.StatusCode)

	if !chunked {
		_, err := io.Copy(dstResp.Writer, resp.Body)
		return err
	}

	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if 0 < n {
			if _, err := dstResp.Write(buf[:n]); err != nil {
				return err
			}
			dstResp.Flush()
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
