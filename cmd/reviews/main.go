package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skytraxdata/airline-reviews/config"
	"github.com/skytraxdata/airline-reviews/export"
	"github.com/skytraxdata/airline-reviews/models"
	"github.com/skytraxdata/airline-reviews/scraper"
	"github.com/skytraxdata/airline-reviews/storage"
)

func main() {
	cfg := config.Load()

	airline := flag.String("airline", cfg.AirlineName, "Airline name as it appears on the review site")
	selector := flag.String("reviews", models.SelectorAll, "Review categories: airline, seat, lounge, or all")
	bucket := flag.String("bucket", cfg.Bucket, "Object store bucket for staged tables")
	dataType := flag.String("data-type", cfg.DataType, "Data type prefix: raw or tf")
	download := flag.Bool("download", false, "Download staged tables instead of scraping")
	upload := flag.Bool("upload", true, "Upload scraped tables to the object store")
	output := flag.String("output", "", "Directory for local CSV/JSONL export (disabled when empty)")
	timeoutMs := flag.Int("timeout", int(cfg.Timeout/time.Millisecond), "HTTP timeout (milliseconds)")
	baseURL := flag.String("base-url", cfg.BaseURL, "Base URL of the review site")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", cfg.Verbose, "Enable verbose logging")

	flag.Parse()

	cfg.AirlineName = *airline
	cfg.Bucket = *bucket
	cfg.DataType = *dataType
	cfg.Timeout = time.Duration(*timeoutMs) * time.Millisecond
	cfg.BaseURL = *baseURL
	cfg.MetricsAddr = *metricsAddr
	cfg.Verbose = *verbose

	logger, level := newLogger(cfg.Verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	s, err := scraper.New(cfg)
	if err != nil {
		slog.Error("initialising scraper", slog.Any("error", err))
		os.Exit(1)
	}

	store, err := storage.NewS3Store(cfg.StoreEndpoint, cfg.StoreAccessKey, cfg.StoreSecretKey, cfg.Region, cfg.StoreSecure)
	if err != nil {
		slog.Error("initialising object store", slog.Any("error", err))
		os.Exit(1)
	}
	loader, err := storage.NewLoader(store, cfg.AirlineName, cfg.DataType, cfg.Region)
	if err != nil {
		slog.Error("initialising loader", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		gatherers := prometheus.Gatherers{s.Metrics.Registry, loader.Metrics().Registry}
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	start := time.Now()
	if *download {
		runDownload(ctx, loader, cfg.Bucket, *selector, *output)
	} else {
		runScrape(ctx, s, loader, cfg.Bucket, *selector, *upload, *output)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	slog.Info("done", slog.Duration("elapsed", time.Since(start)))
}

func runScrape(ctx context.Context, s *scraper.Scraper, loader *storage.Loader, bucket, selector string, upload bool, output string) {
	slog.Info("starting scrape", slog.String("selector", selector))
	if err := s.Extract(ctx, selector); err != nil {
		slog.Error("scraping failed", slog.Any("error", err))
		os.Exit(1)
	}

	loader.Reviews = s.Reviews

	if upload {
		outcomes, err := loader.LoadOrStore(ctx, bucket, storage.DirectionUpload, selector)
		if err != nil {
			slog.Error("upload failed", slog.Any("error", err))
			os.Exit(1)
		}
		printOutcomes("upload", outcomes)
	}

	if output != "" {
		writer, err := export.NewDualWriter(output)
		if err != nil {
			slog.Error("creating export writer", slog.Any("error", err))
			os.Exit(1)
		}
		if err := export.WriteSet(writer, &s.Reviews); err != nil {
			slog.Error("local export failed", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("tables exported", slog.String("dir", output))
	}

	printSummary(&s.Reviews)
}

func runDownload(ctx context.Context, loader *storage.Loader, bucket, selector, output string) {
	slog.Info("starting download", slog.String("selector", selector))
	outcomes, err := loader.LoadOrStore(ctx, bucket, storage.DirectionDownload, selector)
	if err != nil {
		slog.Error("download failed", slog.Any("error", err))
		os.Exit(1)
	}
	printOutcomes("download", outcomes)

	if output != "" {
		writer, err := export.NewDualWriter(output)
		if err != nil {
			slog.Error("creating export writer", slog.Any("error", err))
			os.Exit(1)
		}
		if err := export.WriteSet(writer, &loader.Reviews); err != nil {
			slog.Error("local export failed", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("tables exported", slog.String("dir", output))
	}

	printSummary(&loader.Reviews)
}

func printOutcomes(operation string, outcomes map[models.Category]storage.Outcome) {
	for _, category := range models.Categories() {
		outcome, ok := outcomes[category]
		if !ok {
			continue
		}
		slog.Info("store operation finished",
			slog.String("operation", operation),
			slog.String("category", string(category)),
			slog.String("outcome", string(outcome)),
		)
	}
}

func printSummary(set *models.ReviewSet) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Review tables")
	for _, category := range models.Categories() {
		table := set.Get(category)
		if table == nil {
			fmt.Printf("  %-8s absent\n", category)
			continue
		}
		fmt.Printf("  %-8s %d reviews, %d columns\n", category, len(table.Rows), len(table.Columns))
	}
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
