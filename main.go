package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/jawher/mow.cli"

	"price-watcher/config"
	"price-watcher/scheduler"
	"price-watcher/scraper/catalog"
	"price-watcher/services"
	"price-watcher/storage"
	"price-watcher/utils"
)

func main() {
	app := cli.App("price-watcher", "Track the lowest price of watched catalog items")
	envFile := app.StringOpt("env-file", "", "dotenv file to load (default ./.env)")

	app.Command("watch", "check prices on a fixed interval until interrupted", func(cmd *cli.Cmd) {
		cmd.Action = func() { runWatch(*envFile) }
	})
	app.Command("check", "run a single price check and exit", func(cmd *cli.Cmd) {
		cmd.Action = func() { runCheck(*envFile) }
	})
	app.Action = func() { runWatch(*envFile) }

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func runWatch(envFile string) {
	logger, cfg, cycle := setup(envFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== Price watcher starting ===")
	logger.Info("Catalog: %s | interval: %v | watch-list: %s", cfg.CatalogURL, cfg.CheckInterval, cfg.WatchlistPath)

	job := func(ctx context.Context) error {
		_, err := cycle.Run(ctx)
		return err
	}
	scheduler.New(scheduler.Config{Interval: cfg.CheckInterval}, job, nil, logger).Run(ctx)

	logger.Info("Shutdown complete")
}

func runCheck(envFile string) {
	logger, _, cycle := setup(envFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := cycle.Run(ctx)
	if err != nil {
		logger.Error("Price check failed: %v", err)
		cli.Exit(1)
	}
	logger.Info("Checked %d watched items in %v, %d improved", report.Watched, report.Duration, len(report.Improved))
}

func setup(envFile string) (*utils.Logger, *config.Config, *services.Cycle) {
	logger := utils.NewLogger()

	var cfg *config.Config
	if envFile != "" {
		cfg = config.Load(envFile)
	} else {
		cfg = config.Load()
	}
	logger.SetDebug(cfg.Debug)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		cli.Exit(1)
	}

	selectors, err := config.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		logger.Error("Failed to load selectors: %v", err)
		cli.Exit(1)
	}

	scraper := catalog.New(cfg, selectors, catalog.NewFetcher(cfg, logger), logger)
	cycle := services.NewCycle(
		services.Paths{Watchlist: cfg.WatchlistPath, Latest: cfg.LatestPath, Best: cfg.BestPath},
		storage.NewFileStore(logger),
		scraper,
		services.NewReconciler(cfg.AppendNewCodes),
		services.NewConsoleNotifier(os.Stdout, cfg.Currency),
		logger,
	)
	return logger, cfg, cycle
}
