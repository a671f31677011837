// Package scraper extracts airline customer reviews from the paginated
// review site. For each category it probes page 1 for the total page
// count, fans out a header-collection pass over all pages, unions the
// per-page column sets into one canonical schema, then fans out a review
// extraction pass against that schema and flattens the results into one
// table.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/skytraxdata/airline-reviews/config"
	"github.com/skytraxdata/airline-reviews/models"
)

// Scraper coordinates review extraction for one airline.
type Scraper struct {
	cfg     *config.Config
	client  *Client
	Metrics *Metrics

	// Reviews holds the scraped tables, one optional slot per
	// category. Each slot is written by exactly one coordinator call.
	Reviews models.ReviewSet
}

// New builds a scraper instance configured from cfg.
func New(cfg *config.Config) (*Scraper, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	metrics := NewMetrics()
	client, err := NewClient(cfg, metrics)
	if err != nil {
		return nil, err
	}

	return &Scraper{
		cfg:     cfg,
		client:  client,
		Metrics: metrics,
	}, nil
}

// Extract scrapes the requested categories into the Reviews slots. The
// selector is a single category name or "all"; "all" runs the three
// categories as independent concurrent fan-outs, and a failure in one
// does not stop the others. Failed categories leave their slot
// untouched and contribute a category-tagged error to the joined
// result.
func (s *Scraper) Extract(ctx context.Context, selector string) error {
	categories, err := models.ResolveSelector(selector)
	if err != nil {
		return err
	}

	type outcome struct {
		category models.Category
		table    *models.Table
		err      error
	}

	results := make([]outcome, len(categories))
	var wg sync.WaitGroup
	for i, category := range categories {
		wg.Add(1)
		go func(i int, category models.Category) {
			defer wg.Done()
			table, err := s.ScrapeCategory(ctx, category)
			results[i] = outcome{category: category, table: table, err: err}
		}(i, category)
	}
	wg.Wait()

	var errs []error
	for _, result := range results {
		if result.err != nil {
			errs = append(errs, result.err)
			continue
		}
		s.Reviews.Set(result.category, result.table)
	}
	return errors.Join(errs...)
}

// ScrapeCategory runs the full pipeline for one category and returns the
// assembled table. Failures are wrapped in a CategoryError naming the
// category they aborted.
func (s *Scraper) ScrapeCategory(ctx context.Context, category models.Category) (*models.Table, error) {
	table, err := s.scrapeCategory(ctx, category)
	if err != nil {
		s.Metrics.IncError(string(category))
		return nil, CategoryError{Category: category, Err: err}
	}
	return table, nil
}

func (s *Scraper) scrapeCategory(ctx context.Context, category models.Category) (*models.Table, error) {
	probe, err := s.client.FetchPage(ctx, s.pageURL(category, 1))
	if err != nil {
		return nil, err
	}
	totalPages, err := ParseTotalPages(probe, s.cfg.ReviewsPerPage)
	if err != nil {
		return nil, err
	}

	slog.Info("extracting reviews",
		slog.String("airline", s.cfg.AirlineName),
		slog.String("category", string(category)),
		slog.Int("pages", totalPages),
	)

	headerSets, err := forEachPage(ctx, totalPages, func(ctx context.Context, page int) (map[string]struct{}, error) {
		html, err := s.client.FetchPage(ctx, s.pageURL(category, page))
		if err != nil {
			return nil, err
		}
		return ExtractHeaders(html)
	})
	if err != nil {
		return nil, fmt.Errorf("collect headers: %w", err)
	}

	columns := make(map[string]struct{})
	for _, set := range headerSets {
		for col := range set {
			columns[col] = struct{}{}
		}
	}
	for _, col := range FixedColumns() {
		columns[col] = struct{}{}
	}

	table := models.NewTable(columns)

	pages, err := forEachPage(ctx, totalPages, func(ctx context.Context, page int) ([]models.Review, error) {
		html, err := s.client.FetchPage(ctx, s.pageURL(category, page))
		if err != nil {
			return nil, err
		}
		return ExtractReviews(html, table.Columns)
	})
	if err != nil {
		return nil, fmt.Errorf("extract reviews: %w", err)
	}

	for _, rows := range pages {
		table.Append(rows...)
	}
	s.Metrics.AddReviews(string(category), len(table.Rows))

	slog.Info("category extracted",
		slog.String("airline", s.cfg.AirlineName),
		slog.String("category", string(category)),
		slog.Int("reviews", len(table.Rows)),
	)
	return table, nil
}

// pageURL builds the listing URL for one page of a category.
func (s *Scraper) pageURL(category models.Category, page int) string {
	slug := strings.ToLower(strings.ReplaceAll(s.cfg.AirlineName, " ", "-"))
	return fmt.Sprintf("%s/%s-reviews/%s/page/%d/", strings.TrimRight(s.cfg.BaseURL, "/"), category, slug, page)
}
