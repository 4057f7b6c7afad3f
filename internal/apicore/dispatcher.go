// Package apicore turns a logical API call into a signed request and a
// classified outcome.
//
// A call moves from issued to exactly one of succeeded, transport failed,
// or API failed, when the transport reports its completion. Malformed calls
// are rejected synchronously, before any network activity.
package apicore

import (
	"context"
	"errors"

	"github.com/goflickr/goflickr/internal/apiparam"
	"github.com/goflickr/goflickr/internal/apisig"
	"github.com/goflickr/goflickr/internal/erroror"
	"github.com/goflickr/goflickr/internal/httpclientx"
	"github.com/goflickr/goflickr/internal/model"
)

// Sender is the transport used by [*Dispatcher]. It is implemented by
// [*httpclientx.Transport] and MUST invoke the callback exactly once.
type Sender interface {
	Get(ctx context.Context, URL string, cb httpclientx.Callback)
	Post(ctx context.Context, URL string, form string, cb httpclientx.Callback)
}

var _ Sender = &httpclientx.Transport{}

// Dispatcher is the single chokepoint through which all API calls flow.
//
// The zero value is invalid; initialize the MANDATORY fields.
type Dispatcher struct {
	// BaseURL is the MANDATORY REST endpoint URL.
	BaseURL string

	// Logger is the MANDATORY logger.
	Logger model.Logger

	// Sender is the MANDATORY transport.
	Sender Sender
}

// NewDispatcher creates a new [*Dispatcher] using a [*httpclientx.Transport].
func NewDispatcher(baseURL string, config *httpclientx.Config) *Dispatcher {
	return &Dispatcher{
		BaseURL: baseURL,
		Logger:  model.ValidLoggerOrDefault(config.Logger),
		Sender:  httpclientx.NewTransport(config),
	}
}

// Invoke issues a GET request for the given params, signed with secret
// unless secret is empty. Exactly one of onSuccess and onFailure will be
// invoked, on a background goroutine, iff Invoke returns nil.
//
// onFailure receives the transport error unchanged, an [*APIError] when the
// service reports a failure, or a [*ParseError] for invalid responses.
func (d *Dispatcher) Invoke(ctx context.Context, secret string, params apiparam.List,
	onSuccess func(*Envelope), onFailure func(error)) error {
	return d.invoke(ctx, "GET", secret, params, onSuccess, onFailure)
}

// InvokePost is like [*Dispatcher.Invoke] but sends the params as an
// urlencoded POST body. Use it for methods that modify state.
func (d *Dispatcher) InvokePost(ctx context.Context, secret string, params apiparam.List,
	onSuccess func(*Envelope), onFailure func(error)) error {
	return d.invoke(ctx, "POST", secret, params, onSuccess, onFailure)
}

func (d *Dispatcher) invoke(ctx context.Context, httpMethod, secret string, params apiparam.List,
	onSuccess func(*Envelope), onFailure func(error)) error {
	if onSuccess == nil || onFailure == nil {
		return ErrNilCallback
	}
	if ctx == nil {
		return ErrNilContext
	}

	method, found := params.Lookup("method")
	if !found {
		method = "unknown"
	}

	// we build both forms so that argument errors surface here for both verbs
	URL, err := apisig.BuildURL(d.BaseURL, params, secret)
	if err != nil {
		return err
	}
	form, err := apisig.EncodeQuery(params, secret)
	if err != nil {
		return err
	}

	metricCallsInflight.Inc()
	d.Logger.Debugf("apicore: %s %s...", httpMethod, method)

	callback := func(result *erroror.Value[[]byte]) {
		metricCallsInflight.Dec()
		envelope, err := d.classify(result)
		outcome := outcomeOf(err)
		metricCallsCount.WithLabelValues(method, outcome).Inc()
		d.Logger.Debugf("apicore: %s %s... %s", httpMethod, method, model.ErrorToStringOrOK(err))
		if err != nil {
			onFailure(err)
			return
		}
		onSuccess(envelope)
	}

	switch httpMethod {
	case "POST":
		d.Sender.Post(ctx, d.BaseURL, form, callback)
	default:
		d.Sender.Get(ctx, URL, callback)
	}
	return nil
}

// classify maps the transport outcome to either an envelope or an error.
func (d *Dispatcher) classify(result *erroror.Value[[]byte]) (*Envelope, error) {
	if result.Err != nil {
		return nil, result.Err
	}
	return parseEnvelope(result.Value)
}

func outcomeOf(err error) string {
	var (
		apiErr   *APIError
		parseErr *ParseError
	)
	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &apiErr):
		return outcomeAPIFailure
	case errors.As(err, &parseErr):
		return outcomeParseFailure
	default:
		return outcomeTransportFailed
	}
}
