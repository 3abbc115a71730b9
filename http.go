package gql

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/gookit/goutil/envutil"
	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
	"golang.org/x/net/http2"
)

// createHttpClient builds one tuned transport for every endpoint. HTTP/2 is
// negotiated through ALPN on https and falls back to HTTP/1.1 when the
// server does not offer it.
func (b *BaseClient) createHttpClient() *http.Client {
	insecure := envutil.GetBool("GRAPHQL_INSECURE_SKIP_VERIFY", false)
	if insecure {
		b.Logger.Warning(&libpack_logger.LogMessage{
			Message: "TLS certificate verification disabled via GRAPHQL_INSECURE_SKIP_VERIFY",
		})
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxConnsPerHost:     50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  true, // Disable automatic compression to prevent trailing garbage errors
		WriteBufferSize:     4096,
		ReadBufferSize:      4096,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: insecure, // #nosec G402 -- opt-in via environment
		},
	}

	h2, err := http2.ConfigureTransports(transport)
	if err != nil {
		b.Logger.Warning(&libpack_logger.LogMessage{
			Message: "Can't enable HTTP/2, using HTTP/1.1 only",
			Pairs:   map[string]interface{}{"error": err.Error()},
		})
	} else {
		h2.ReadIdleTimeout = 30 * time.Second
		h2.PingTimeout = 10 * time.Second
		h2.WriteByteTimeout = 10 * time.Second
	}

	// No overall Timeout: deadlines come from the caller's context or FetchOptions.Timeout.
	return &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // Don't follow redirects automatically
		},
	}
}
