package flickr

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goflickr/goflickr/internal/apicore"
	"github.com/goflickr/goflickr/internal/apiparam"
	"github.com/goflickr/goflickr/internal/httpclientx"
	"github.com/goflickr/goflickr/internal/model"
	"github.com/goflickr/goflickr/pkg/asyncx"
)

// ErrMissingAPIKey indicates that the config does not contain an API key.
var ErrMissingAPIKey = errors.New("flickr: missing API key")

// ErrEmptyArgument indicates that a required argument is empty.
var ErrEmptyArgument = errors.New("flickr: empty required argument")

// Client is a client for the REST API.
//
// All methods are safe for concurrent use.
type Client struct {
	// Auth contains the flickr.auth.* methods.
	Auth *Auth

	// People contains the flickr.people.* methods.
	People *People

	// Photos contains the flickr.photos.* methods.
	Photos *Photos

	// Tags contains the flickr.tags.* methods.
	Tags *Tags

	// Test contains the flickr.test.* methods.
	Test *Test

	authURL    string
	creds      model.Credentials
	dispatcher *apicore.Dispatcher
	logger     model.Logger
	mu         sync.Mutex
}

// NewClient creates a new [*Client].
func NewClient(config *Config) (*Client, error) {
	if config.Credentials.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		clnt, err := httpclientx.NewHTTPClient(config.Proxy)
		if err != nil {
			return nil, err
		}
		httpClient = clnt
	}
	logger := model.ValidLoggerOrDefault(config.Logger)
	c := &Client{
		authURL: valueOrDefault(config.AuthURL, DefaultAuthURL),
		creds:   config.Credentials,
		dispatcher: apicore.NewDispatcher(valueOrDefault(config.BaseURL, DefaultBaseURL), &httpclientx.Config{
			Client:    httpClient,
			Logger:    logger,
			UserAgent: valueOrDefault(config.UserAgent, model.HTTPHeaderUserAgent),
		}),
		logger: logger,
	}
	c.Auth = &Auth{c: c}
	c.People = &People{c: c}
	c.Photos = &Photos{c: c}
	c.Tags = &Tags{c: c}
	c.Test = &Test{c: c}
	return c, nil
}

func valueOrDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

// Credentials returns a copy of the current credentials.
func (c *Client) Credentials() model.Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creds
}

// SetAuthToken replaces the auth token used by subsequent calls.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.creds.AuthToken = token
	c.mu.Unlock()
}

// nilIfEmpty maps the empty string to nil so that the corresponding
// parameter is dropped.
func nilIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// newParams returns the parameters common to every call of method
// followed by the given name/value pairs.
func (c *Client) newParams(method string, kvs ...any) (apiparam.List, string, error) {
	creds := c.Credentials()
	params := apiparam.List{
		apiparam.MustNew("method", method),
		apiparam.MustNew("api_key", creds.APIKey),
		apiparam.MustNew("auth_token", nilIfEmpty(creds.AuthToken)),
	}
	for idx := 0; idx+1 < len(kvs); idx += 2 {
		name, _ := kvs[idx].(string)
		if err := params.Add(name, kvs[idx+1]); err != nil {
			return nil, "", err
		}
	}
	return params, creds.SharedSecret, nil
}

// call describes a single API call.
type call[T any] struct {
	// method is the API method name.
	method string

	// post indicates that we must use POST.
	post bool

	// args contains name/value pairs after the common params.
	args []any

	// required lists the args that must not be empty.
	required []string

	// decode maps the success envelope to the typed result.
	decode func(env *apicore.Envelope) (T, error)
}

// validate fails when a required arg is missing or empty.
func (cl *call[T]) validate() error {
	for _, name := range cl.required {
		var value any
		for idx := 0; idx+1 < len(cl.args); idx += 2 {
			if cl.args[idx] == name {
				value = cl.args[idx+1]
			}
		}
		if value == nil || value == "" {
			return fmt.Errorf("%w: %s", ErrEmptyArgument, name)
		}
	}
	return nil
}

// startCall issues cl and returns the future tracking it. The result is
// also published on event.
func startCall[T any](ctx context.Context, c *Client, event *asyncx.Event[T], cl *call[T]) (*asyncx.Future[T], error) {
	if err := cl.validate(); err != nil {
		return nil, err
	}
	params, secret, err := c.newParams(cl.method, cl.args...)
	if err != nil {
		return nil, err
	}
	return asyncx.Start(event, func(token asyncx.Token, complete asyncx.Completer[T]) error {
		c.logger.Debugf("flickr: %s token=%s", cl.method, token)
		onSuccess := func(env *apicore.Envelope) {
			complete(cl.decode(env))
		}
		onFailure := func(err error) {
			var zero T
			complete(zero, err)
		}
		if cl.post {
			return c.dispatcher.InvokePost(ctx, secret, params, onSuccess, onFailure)
		}
		return c.dispatcher.Invoke(ctx, secret, params, onSuccess, onFailure)
	})
}

// callSync issues a call using start and blocks until the result
// carrying its token is published on event.
func callSync[T any](ctx context.Context, event *asyncx.Event[T], start func() (*asyncx.Future[T], error)) (T, error) {
	return asyncx.CallSyncContext(ctx, func() (asyncx.Token, error) {
		future, err := start()
		if err != nil {
			return asyncx.Token{}, err
		}
		return future.Token(), nil
	}, event)
}

// decodeInto returns a decode function unmarshalling the envelope into a
// new *W and extracting the result with get.
func decodeInto[W any, T any](get func(w *W) (T, error)) func(env *apicore.Envelope) (T, error) {
	return func(env *apicore.Envelope) (T, error) {
		var wrapper W
		if err := env.Decode(&wrapper); err != nil {
			var zero T
			return zero, err
		}
		return get(&wrapper)
	}
}

// required returns *v or a [*apicore.ParseError] when the payload
// lacks the given element.
func required[T any](element string, v *T) (T, error) {
	if v == nil {
		var zero T
		return zero, &apicore.ParseError{Reason: "missing " + element + " element"}
	}
	return *v, nil
}

func decodeEmpty(env *apicore.Envelope) (Empty, error) {
	return Empty{}, nil
}
