package prospekt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher downloads prospekt pages. Supermarket sites are picky about
// non-browser clients, so requests carry browser-like headers.
type Fetcher struct {
	client *resty.Client
}

func NewFetcher() *Fetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	return &Fetcher{client: client}
}

func (f *Fetcher) FetchPage(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36").
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8").
		SetHeader("Accept-Language", "de-DE,de;q=0.9,en;q=0.8").
		Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}
	return resp.String(), nil
}
