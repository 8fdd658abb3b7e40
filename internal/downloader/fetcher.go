package downloader

import (
	"context"
	"io"

	"github.com/kkgogogo17/binance-public-data/internal/exchange"
	"github.com/kkgogogo17/binance-public-data/internal/xhttp"
)

// Fetcher is the transfer primitive: given a repository-relative path and
// file name, it returns the file contents. dateRange is an optional raw
// range hint implementations may use for diagnostics.
type Fetcher interface {
	Fetch(ctx context.Context, path, fileName, dateRange string) (io.ReadCloser, error)
}

// HTTPFetcher fetches archives over HTTP from the public data repository.
type HTTPFetcher struct {
	client  *xhttp.Client
	baseURL string
}

// NewHTTPFetcher creates a fetcher against baseURL. An empty baseURL
// defaults to the exchange's public repository.
func NewHTTPFetcher(client *xhttp.Client, baseURL string) *HTTPFetcher {
	if baseURL == "" {
		baseURL = exchange.BaseURL
	}
	return &HTTPFetcher{client: client, baseURL: baseURL}
}

// Fetch downloads path+fileName relative to the base URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, path, fileName, dateRange string) (io.ReadCloser, error) {
	return f.client.Get(ctx, f.baseURL+path+fileName)
}
