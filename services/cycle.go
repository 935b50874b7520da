package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"price-watcher/models"
	"price-watcher/storage"
	"price-watcher/utils"
)

// SnapshotProvider returns the current catalog entries for watched items.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, watch []models.Item) ([]models.Item, error)
}

// Paths names the three record files a cycle works with.
type Paths struct {
	Watchlist string
	Latest    string
	Best      string
}

// Cycle runs one price check: load, fetch, reconcile, persist, notify.
type Cycle struct {
	paths      Paths
	store      storage.ItemStore
	provider   SnapshotProvider
	reconciler *Reconciler
	notifier   Notifier
	logger     *utils.Logger
}

// NewCycle wires the collaborators of a check cycle.
func NewCycle(paths Paths, store storage.ItemStore, provider SnapshotProvider,
	reconciler *Reconciler, notifier Notifier, logger *utils.Logger) *Cycle {
	return &Cycle{
		paths:      paths,
		store:      store,
		provider:   provider,
		reconciler: reconciler,
		notifier:   notifier,
		logger:     logger,
	}
}

// Run executes one cycle. A snapshot failure aborts the cycle before any
// file is written. Save failures are logged and do not fail the cycle.
func (c *Cycle) Run(ctx context.Context) (*models.CycleReport, error) {
	report := &models.CycleReport{ID: uuid.NewString(), StartedAt: time.Now()}
	tag := "[cycle " + report.ID[:8] + "]"

	c.logger.Info("%s Checking", tag)

	var watch, priorBest, latest []models.Item

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		priorBest = c.store.Load(c.paths.Best)
		return nil
	})
	g.Go(func() error {
		watch = c.store.Load(c.paths.Watchlist)
		if len(watch) == 0 {
			return nil
		}
		snap, err := c.provider.Snapshot(gctx, watch)
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		latest = snap
		return nil
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("%s Aborted, best prices left untouched: %v", tag, err)
		return nil, err
	}

	report.Watched = len(watch)
	if len(watch) == 0 {
		c.logger.Warn("%s Watch-list %s is empty, nothing to check", tag, c.paths.Watchlist)
		report.NextBest = priorBest
		report.Duration = time.Since(report.StartedAt)
		return report, nil
	}

	res := c.reconciler.Reconcile(latest, priorBest)
	report.Latest = latest
	report.Improved = res.Improved
	report.NextBest = res.NextBest

	if err := c.store.Save(c.paths.Latest, latest); err != nil {
		c.logger.Error("%s Error while saving latest snapshot: %v", tag, err)
	}
	if err := c.store.Save(c.paths.Best, res.NextBest); err != nil {
		c.logger.Error("%s Error while saving best prices: %v", tag, err)
	}

	if len(res.Improved) > 0 {
		c.logger.Info("%s Better price found for %d of %d items", tag, len(res.Improved), len(latest))
	} else {
		c.logger.Info("%s No better price (%d items checked)", tag, len(latest))
	}
	c.notifier.Notify(res.Improved)

	report.Duration = time.Since(report.StartedAt)
	return report, nil
}
