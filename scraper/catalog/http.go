package catalog

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"price-watcher/utils"
)

// HTTPFetcher downloads the catalog page with a single colly GET.
type HTTPFetcher struct {
	userAgent string
	timeout   time.Duration
	logger    *utils.Logger
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(userAgent string, timeout time.Duration, logger *utils.Logger) *HTTPFetcher {
	return &HTTPFetcher{userAgent: userAgent, timeout: timeout, logger: logger}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	options := []colly.CollectorOption{
		colly.AllowURLRevisit(),
	}
	if f.userAgent != "" {
		options = append(options, colly.UserAgent(f.userAgent))
	}
	c := colly.NewCollector(options...)
	c.DisableCookies()
	if f.timeout > 0 {
		c.SetRequestTimeout(f.timeout)
	}

	var body []byte
	var status int
	c.OnRequest(func(r *colly.Request) {
		f.logger.Debug("[catalog] Visiting %s", r.URL.String())
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	// colly has no context support; the request timeout bounds the goroutine.
	done := make(chan error, 1)
	go func() { done <- c.Visit(url) }()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("catalog: GET %s: %w", url, err)
		}
	}

	if status != 0 && status != 200 {
		return nil, fmt.Errorf("catalog: GET %s: unexpected status %d", url, status)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("catalog: GET %s: %w", url, ErrEmptyDocument)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", url, err)
	}
	return doc, nil
}
