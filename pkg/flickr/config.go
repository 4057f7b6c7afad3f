package flickr

import (
	"net/url"

	"github.com/goflickr/goflickr/internal/model"
)

const (
	// DefaultBaseURL is the default REST endpoint.
	DefaultBaseURL = "https://api.flickr.com/services/rest/"

	// DefaultAuthURL is the default endpoint of the browser login flow.
	DefaultAuthURL = "https://www.flickr.com/services/auth/"
)

// Credentials contains the API key, shared secret and auth token.
type Credentials = model.Credentials

// Logger is the logger used by [*Client].
type Logger = model.Logger

// HTTPClient is the HTTP client used by [*Client].
type HTTPClient = model.HTTPClient

// Config contains the settings for [NewClient].
//
// The configuration is read once by [NewClient]; there is no process-wide
// state, so clients with different proxies may coexist.
type Config struct {
	// Credentials contains the MANDATORY API key and the OPTIONAL shared
	// secret and auth token.
	Credentials Credentials

	// BaseURL is the OPTIONAL REST endpoint. Defaults to [DefaultBaseURL].
	BaseURL string

	// AuthURL is the OPTIONAL login endpoint. Defaults to [DefaultAuthURL].
	AuthURL string

	// HTTPClient is the OPTIONAL HTTP client. When nil, we create one
	// honouring Proxy.
	HTTPClient HTTPClient

	// Proxy is the OPTIONAL proxy URL, ignored when HTTPClient is set.
	// Supported schemes are http, https and socks5.
	Proxy *url.URL

	// Logger is the OPTIONAL logger. Defaults to [model.DiscardLogger].
	Logger Logger

	// UserAgent is the OPTIONAL user agent. Defaults to [model.HTTPHeaderUserAgent].
	UserAgent string
}
