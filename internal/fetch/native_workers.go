//go:build js && wasm

package fetch

import (
	"bytes"
	"context"
	"io"

	cffetch "github.com/syumai/workers/cloudflare/fetch"
)

// workersFetcher implements Fetcher with the Cloudflare Workers fetch API
type workersFetcher struct {
	client *cffetch.Client
}

// Native returns the Workers fetch client.
func Native() (Fetcher, bool) {
	return &workersFetcher{client: cffetch.NewClient()}, true
}

// Fetch performs an HTTP request using Cloudflare Workers fetch.
// Workers ignore the credentials mode, there is no ambient cookie store.
func (f *workersFetcher) Fetch(ctx context.Context, url string, init Init) (*Response, error) {
	var body io.Reader
	if init.Body != nil {
		body = bytes.NewReader(init.Body)
	}

	req, err := cffetch.NewRequest(ctx, init.Method, url, body)
	if err != nil {
		return nil, err
	}

	for key, values := range init.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := f.client.Do(req, nil)
	if err != nil {
		return nil, err
	}
	return FromHTTP(resp, url), nil
}
