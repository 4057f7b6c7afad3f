package httpclientx

//
// transport.go - asynchronous request/response primitive.
//

import (
	"context"

	"github.com/goflickr/goflickr/internal/erroror"
)

// Callback receives the outcome of a request issued through [*Transport].
//
// It runs on a background goroutine; do not assume thread affinity.
type Callback func(result *erroror.Value[[]byte])

// Transport issues requests off the calling goroutine and reports each
// completion exactly once through a [Callback].
//
// The zero value is invalid; construct using [NewTransport].
type Transport struct {
	config *Config
}

// NewTransport constructs a new [*Transport].
func NewTransport(config *Config) *Transport {
	return &Transport{config: config}
}

// Config returns the config used by this transport.
func (txp *Transport) Config() *Config {
	return txp.config
}

// Get issues a GET request for URL and invokes cb with the raw body or the error.
func (txp *Transport) Get(ctx context.Context, URL string, cb Callback) {
	go func() {
		cb(newValue(GetRaw(ctx, txp.config, URL)))
	}()
}

// Post issues a POST request for URL using form as the body and invokes
// cb with the raw body or the error.
func (txp *Transport) Post(ctx context.Context, URL string, form string, cb Callback) {
	go func() {
		cb(newValue(PostRaw(ctx, txp.config, URL, form)))
	}()
}

func newValue(body []byte, err error) *erroror.Value[[]byte] {
	if err != nil {
		return erroror.Fail[[]byte](err)
	}
	return erroror.Ok(body)
}
