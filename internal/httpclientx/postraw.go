package httpclientx

//
// postraw.go - POST a form and read a raw response.
//

import (
	"context"
	"net/http"
	"strings"
)

// PostRaw sends a POST request with an urlencoded form body and reads a raw response.
//
// Arguments:
//
// - ctx is the cancellable context;
//
// - config is the config to use;
//
// - URL is the URL to use;
//
// - form is the already-encoded `name=value&...` body.
//
// This function either returns an error or a valid body.
func PostRaw(ctx context.Context, config *Config, URL string, form string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", URL, strings.NewReader(form))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(ctx, req, config)
}
