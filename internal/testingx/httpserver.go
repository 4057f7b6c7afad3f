package testingx

//
// HTTP server helpers
//

import (
	"net"
	"net/http"
	"net/http/httptest"

	"github.com/goflickr/goflickr/internal/runtimex"
)

// MustNewHTTPServer creates a new HTTP server listening on the loopback
// interface using the given handler. The caller MUST call Close.
func MustNewHTTPServer(handler http.Handler) *httptest.Server {
	runtimex.PanicIfNil(handler, "passed a nil handler")
	return httptest.NewServer(handler)
}

// HTTPHandlerReset returns a handler that resets the connection.
func HTTPHandlerReset() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hijacker := w.(http.Hijacker)
		conn, _, err := hijacker.Hijack()
		runtimex.PanicOnError(err, "hijacker.Hijack failed")
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetLinger(0)
		}
		conn.Close()
	})
}

// HTTPHandlerStatus returns a handler that always replies with the given status code.
func HTTPHandlerStatus(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

// HTTPHandlerBody returns a handler that always replies with 200 and the given body.
func HTTPHandlerBody(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		_, _ = w.Write([]byte(body))
	})
}
