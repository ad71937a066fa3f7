package verify

import (
	"context"
	"fmt"
	"github.com/go-resty/resty/v2"
	"net/http"
	"time"
)

// Fetcher загружает PEM-цепочку сертификатов по URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// HTTPFetcher делает ровно одну попытку загрузки, без повторов и без редиректов:
// URL цепочки уже проверен, уходить с него нельзя.
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return NewHTTPFetcherWithClient(resty.New().SetTimeout(timeout))
}

func NewHTTPFetcherWithClient(client *resty.Client) *HTTPFetcher {
	return &HTTPFetcher{
		client: client.
			SetRetryCount(0).
			SetRedirectPolicy(resty.NoRedirectPolicy()),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}
