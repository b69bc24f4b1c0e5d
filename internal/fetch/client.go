package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// ClientFetcher gives a net/http client fetch semantics. Cookies stored in
// the client's jar are only sent when the credentials mode allows it.
type ClientFetcher struct {
	client *http.Client
}

// Ensure ClientFetcher implements Fetcher
var _ Fetcher = (*ClientFetcher)(nil)

// NewClientFetcher wraps client. A nil client gets a fresh one with its own
// cookie jar.
func NewClientFetcher(client *http.Client) *ClientFetcher {
	if client == nil {
		client = NewCookieClient()
	}
	return &ClientFetcher{client: client}
}

// NewCookieClient returns an *http.Client with pooled connections and a
// public-suffix aware cookie jar.
func NewCookieClient() *http.Client {
	// cookiejar.New never returns a non-nil error
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &http.Client{
		Jar: jar,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}

// Fetch performs the request described by init.
func (f *ClientFetcher) Fetch(ctx context.Context, url string, init Init) (*Response, error) {
	method := init.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if init.Body != nil {
		body = bytes.NewReader(init.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	for name, values := range init.Header {
		req.Header[name] = append([]string(nil), values...)
	}

	resp, err := WithCredentials(f.client, init.Credentials).Do(req)
	if err != nil {
		return nil, err
	}
	return FromHTTP(resp, url), nil
}

// WithCredentials returns the client to use for the given credentials mode:
// client itself, or a shallow copy without a cookie jar for CredentialsOmit.
func WithCredentials(client *http.Client, mode Credentials) *http.Client {
	if mode != CredentialsOmit || client.Jar == nil {
		return client
	}
	c := *client
	c.Jar = nil
	return &c
}
