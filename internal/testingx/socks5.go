package testingx

import (
	"net"
	"net/url"
	"sync"

	"github.com/armon/go-socks5"
	"github.com/goflickr/goflickr/internal/runtimex"
)

// SOCKS5Proxy is a SOCKS5 proxy listening on the loopback interface.
//
// The zero value is invalid; construct using [MustNewSOCKS5Proxy].
type SOCKS5Proxy struct {
	listener net.Listener
	once     sync.Once
}

// MustNewSOCKS5Proxy starts a SOCKS5 proxy without authentication. The
// caller MUST call Close.
func MustNewSOCKS5Proxy() *SOCKS5Proxy {
	server, err := socks5.New(&socks5.Config{})
	runtimex.PanicOnError(err, "socks5.New failed")
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	runtimex.PanicOnError(err, "net.Listen failed")
	go server.Serve(listener)
	return &SOCKS5Proxy{listener: listener}
}

// URL returns the proxy URL.
func (p *SOCKS5Proxy) URL() *url.URL {
	return &url.URL{
		Scheme: "socks5",
		Host:   p.listener.Addr().String(),
	}
}

// Close stops the proxy. Closing the listener causes Serve to return.
func (p *SOCKS5Proxy) Close() error {
	p.once.Do(func() { _ = p.listener.Close() })
	return nil
}
