// Package httpclientx contains the HTTP transport used to talk to the API.
//
// The synchronous [GetRaw] and [PostRaw] functions perform a single request
// and return the raw body. [*Transport] wraps them into a fire-and-forget
// primitive invoking a completion callback exactly once from a background
// goroutine. There is no retry and no timeout other than the context's.
package httpclientx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBodySize is the maximum response body size we read.
const DefaultMaxBodySize = 1 << 24

// ErrRequestFailed indicates that an HTTP request status indicates failure.
type ErrRequestFailed struct {
	StatusCode int
}

var _ error = &ErrRequestFailed{}

// Error implements error.
func (err *ErrRequestFailed) Error() string {
	return fmt.Sprintf("httpx: request failed: status code %d", err.StatusCode)
}

// do sends the given request and returns the response body or an error.
func do(ctx context.Context, req *http.Request, config *Config) ([]byte, error) {
	req.Header.Set("User-Agent", config.UserAgent)

	config.Logger.Debugf("httpx: %s %s", req.Method, req.URL.Redacted())

	resp, err := config.Client.Do(req)
	if err != nil {
		config.Logger.Debugf("httpx: %s %s... %s", req.Method, req.URL.Host, err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := &ErrRequestFailed{resp.StatusCode}
		config.Logger.Debugf("httpx: %s %s... %s", req.Method, req.URL.Host, err.Error())
		return nil, err
	}

	rawrespbody, err := readAllContext(ctx, io.LimitReader(resp.Body, DefaultMaxBodySize))
	if err != nil {
		config.Logger.Debugf("httpx: %s %s... %s", req.Method, req.URL.Host, err.Error())
		return nil, err
	}

	config.Logger.Debugf("httpx: %s %s... %d bytes", req.Method, req.URL.Host, len(rawrespbody))
	return rawrespbody, nil
}

// readAllContext is like io.ReadAll but returns early when ctx is done.
func readAllContext(ctx context.Context, r io.Reader) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(r)
		ch <- result{data, err}
	}()
	select {
	case out := <-ch:
		return out.data, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
