package model

//
// Common HTTP definitions
//

import "net/http"

// HTTPHeaderUserAgent is the default User-Agent header.
const HTTPHeaderUserAgent = "goflickr/0.1 (+https://github.com/goflickr/goflickr)"

// HTTPClient is an [*http.Client] like structure.
type HTTPClient interface {
	// Do sends the request and returns the response.
	Do(req *http.Request) (*http.Response, error)

	// CloseIdleConnections closes the idle connections.
	CloseIdleConnections()
}

var _ HTTPClient = &http.Client{}
