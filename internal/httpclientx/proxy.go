package httpclientx

//
// Optional proxy support
//

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

// ErrProxyUnsupportedScheme indicates we don't support the proxy scheme.
var ErrProxyUnsupportedScheme = errors.New("httpx: unsupported proxy scheme")

// NewHTTPClient returns an [*http.Client] honouring the OPTIONAL proxyURL.
//
// When proxyURL is nil, the client uses the environment proxy settings like
// [http.DefaultTransport] does. The "http" and "https" schemes configure an
// HTTP proxy, while "socks5" configures a SOCKS5 proxy.
func NewHTTPClient(proxyURL *url.URL) (*http.Client, error) {
	txp := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != nil {
		switch proxyURL.Scheme {
		case "http", "https":
			txp.Proxy = http.ProxyURL(proxyURL)
		case "socks5", "socks5h":
			var auth *proxy.Auth
			if proxyURL.User != nil {
				password, _ := proxyURL.User.Password()
				auth = &proxy.Auth{User: proxyURL.User.Username(), Password: password}
			}
			child, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, &net.Dialer{})
			if err != nil {
				return nil, err
			}
			cd := child.(proxy.ContextDialer) // will work
			txp.Proxy = nil
			txp.DialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
				return cd.DialContext(ctx, network, address)
			}
		default:
			return nil, ErrProxyUnsupportedScheme
		}
	}
	return &http.Client{Transport: txp}, nil
}
