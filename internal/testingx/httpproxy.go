package testingx

import (
	"io"
	"net/http"
	"sync/atomic"

	"github.com/goflickr/goflickr/internal/model"
)

// HTTPProxyHandler is a forward HTTP proxy supporting the GET and POST methods.
//
// The zero value is invalid; construct using [NewHTTPProxyHandler].
type HTTPProxyHandler struct {
	// Logger is the logger to use.
	Logger model.Logger

	// requests counts the proxied requests.
	requests atomic.Int64
}

// NewHTTPProxyHandler constructs a new [*HTTPProxyHandler].
func NewHTTPProxyHandler(logger model.Logger) *HTTPProxyHandler {
	return &HTTPProxyHandler{Logger: model.ValidLoggerOrDefault(logger)}
}

// Requests returns the number of requests we proxied.
func (ph *HTTPProxyHandler) Requests() int64 {
	return ph.requests.Load()
}

// ServeHTTP implements http.Handler.
func (ph *HTTPProxyHandler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	ph.Logger.Infof("PROXY: request: %s %s", req.Method, req.URL)

	// reject requests that already visited the proxy and requests we cannot route
	if req.Host == "" || req.Header.Get("Via") != "" {
		rw.WriteHeader(http.StatusBadRequest)
		return
	}
	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		rw.WriteHeader(http.StatusNotImplemented)
		return
	}
	ph.requests.Add(1)

	// clone the request before modifying it
	req = req.Clone(req.Context())

	// include proxy header to prevent sending requests to ourself
	req.Header.Add("Via", "testingx/0.1.0")

	// fix: "http: Request.RequestURI can't be set in client requests"
	req.RequestURI = ""

	// fix: `http: unsupported protocol scheme ""`
	req.URL.Host = req.Host

	// fix: "http: no Host in request URL"
	req.URL.Scheme = "http"

	txp := &http.Transport{}
	defer txp.CloseIdleConnections()

	resp, err := txp.RoundTrip(req)
	if err != nil {
		ph.Logger.Warnf("PROXY: request failed: %s", err.Error())
		rw.WriteHeader(http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, value := range values {
			rw.Header().Add(key, value)
		}
	}
	rw.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(rw, resp.Body)
}
