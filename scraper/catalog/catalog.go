package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/PuerkitoBio/goquery"

	"price-watcher/config"
	"price-watcher/models"
	"price-watcher/services"
	"price-watcher/utils"
)

// ErrEmptyDocument is returned when the catalog responds with no markup.
var ErrEmptyDocument = errors.New("empty catalog document")

// Fetcher retrieves and parses the catalog page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// NewFetcher picks the headless browser or the plain HTTP fetcher per cfg.
func NewFetcher(cfg *config.Config, logger *utils.Logger) Fetcher {
	if cfg.UseChrome {
		return NewBrowserFetcher(cfg.ChromeBin, cfg.UserAgent, cfg.FetchTimeout, logger)
	}
	return NewHTTPFetcher(cfg.UserAgent, cfg.FetchTimeout, logger)
}

// Scraper produces the latest snapshot of watched items from the catalog.
type Scraper struct {
	url       string
	selectors config.Selectors
	fetcher   Fetcher
	cleaner   *services.Cleaner
	retry     *utils.RetryConfig
	logger    *utils.Logger
}

// New creates a ready-to-use catalog Scraper.
func New(cfg *config.Config, selectors config.Selectors, fetcher Fetcher, logger *utils.Logger) *Scraper {
	return &Scraper{
		url:       cfg.CatalogURL,
		selectors: selectors,
		fetcher:   fetcher,
		cleaner:   services.NewCleaner(logger),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Duration(cfg.RetryBaseMs) * time.Millisecond,
			Logger:      logger,
		},
		logger: logger,
	}
}

// Snapshot fetches the catalog and returns one item per watched code found
// on the page, in page order.
func (s *Scraper) Snapshot(ctx context.Context, watch []models.Item) ([]models.Item, error) {
	var doc *goquery.Document
	err := s.retry.Do(ctx, "fetch-catalog", func(ctx context.Context) error {
		d, err := s.fetcher.Fetch(ctx, s.url)
		if err != nil {
			return err
		}
		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	watched := utils.NewSet(models.Codes(watch)...)
	raw := Extract(doc, s.selectors, watched)
	items := s.cleaner.Clean(raw)

	s.logger.Info("[catalog] %d of %d watched codes listed at %s", len(items), watched.Size(), s.url)
	if len(raw) == 0 && doc.Find(s.selectors.Item).Length() == 0 {
		s.logger.Warn("[catalog] Selector %q matched nothing, the page layout may have changed", s.selectors.Item)
	}
	return items, nil
}
