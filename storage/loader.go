package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skytraxdata/airline-reviews/models"
)

// Direction selects between pushing tables to the store and pulling
// them back.
type Direction string

const (
	DirectionUpload   Direction = "upload"
	DirectionDownload Direction = "download"
)

// Data type prefixes used in object keys.
const (
	DataTypeRaw         = "raw"
	DataTypeTransformed = "tf"
)

// Outcome reports what happened to one category during LoadOrStore.
type Outcome string

const (
	OutcomeUploaded   Outcome = "uploaded"
	OutcomeDownloaded Outcome = "downloaded"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
)

// Loader stages one airline's review tables in an object store. Store
// failures are logged and reported as outcomes; they never escape past
// the loader boundary.
type Loader struct {
	store    ObjectStore
	airline  string
	dataType string
	region   string
	metrics  *Metrics

	// Reviews holds the tables being staged, populated either by the
	// scrape path or by Download.
	Reviews models.ReviewSet
}

// NewLoader builds a loader for one airline-and-data-type context.
func NewLoader(store ObjectStore, airline, dataType, region string) (*Loader, error) {
	if airline == "" {
		return nil, fmt.Errorf("airline name cannot be empty")
	}
	if dataType != DataTypeRaw && dataType != DataTypeTransformed {
		return nil, fmt.Errorf("invalid data type %q (want %s or %s)", dataType, DataTypeRaw, DataTypeTransformed)
	}
	return &Loader{
		store:    store,
		airline:  airline,
		dataType: dataType,
		region:   region,
		metrics:  NewMetrics(),
	}, nil
}

// Metrics exposes the loader's Prometheus registry.
func (l *Loader) Metrics() *Metrics {
	return l.metrics
}

// ObjectKey returns the deterministic store key for one category.
func (l *Loader) ObjectKey(category models.Category) string {
	slug := strings.ToLower(strings.ReplaceAll(l.airline, " ", "_"))
	return fmt.Sprintf("%s/%s/%s_reviews.csv", slug, l.dataType, category)
}

// EnsureBucket reports whether the bucket exists, creating it in the
// loader's region when asked and it is missing.
func (l *Loader) EnsureBucket(ctx context.Context, bucket string, create bool) (bool, error) {
	exists, err := l.store.BucketExists(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("head bucket %q: %w", bucket, err)
	}
	if exists {
		slog.Debug("bucket exists", slog.String("bucket", bucket))
		return true, nil
	}

	slog.Info("bucket does not exist", slog.String("bucket", bucket))
	if !create {
		return false, nil
	}
	if err := l.store.MakeBucket(ctx, bucket, l.region); err != nil {
		return false, fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	slog.Info("bucket created", slog.String("bucket", bucket), slog.String("region", l.region))
	return true, nil
}

// Upload pushes one category's table to the store. An absent or empty
// table is a skipped no-op, not an error.
func (l *Loader) Upload(ctx context.Context, bucket string, category models.Category) Outcome {
	table := l.Reviews.Get(category)
	if table.Empty() {
		slog.Warn("table absent or empty, skipping upload",
			slog.String("airline", l.airline),
			slog.String("category", string(category)),
		)
		l.metrics.IncOp("upload", string(OutcomeSkipped))
		return OutcomeSkipped
	}

	key := l.ObjectKey(category)
	body, err := EncodeTable(table)
	if err != nil {
		slog.Error("encode table failed", slog.String("key", key), slog.Any("error", err))
		l.metrics.IncOp("upload", string(OutcomeFailed))
		return OutcomeFailed
	}
	if err := l.store.Put(ctx, bucket, key, body, "text/csv"); err != nil {
		slog.Error("upload failed", slog.String("bucket", bucket), slog.String("key", key), slog.Any("error", err))
		l.metrics.IncOp("upload", string(OutcomeFailed))
		return OutcomeFailed
	}

	l.metrics.IncOp("upload", string(OutcomeUploaded))
	l.metrics.AddBytes("upload", len(body))
	slog.Info("table uploaded",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int("rows", len(table.Rows)),
	)
	return OutcomeUploaded
}

// Download pulls one category's table into its slot. A missing object
// or any store failure leaves the slot absent.
func (l *Loader) Download(ctx context.Context, bucket string, category models.Category) Outcome {
	key := l.ObjectKey(category)
	body, found, err := l.store.Get(ctx, bucket, key)
	if err != nil {
		slog.Error("download failed", slog.String("bucket", bucket), slog.String("key", key), slog.Any("error", err))
		l.metrics.IncOp("download", string(OutcomeFailed))
		return OutcomeFailed
	}
	if !found {
		slog.Warn("object not found", slog.String("bucket", bucket), slog.String("key", key))
		l.metrics.IncOp("download", string(OutcomeSkipped))
		return OutcomeSkipped
	}

	table, err := DecodeTable(body)
	if err != nil {
		slog.Error("decode table failed", slog.String("key", key), slog.Any("error", err))
		l.metrics.IncOp("download", string(OutcomeFailed))
		return OutcomeFailed
	}

	l.Reviews.Set(category, table)
	l.metrics.IncOp("download", string(OutcomeDownloaded))
	l.metrics.AddBytes("download", len(body))
	slog.Info("table downloaded",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int("rows", len(table.Rows)),
	)
	return OutcomeDownloaded
}

// LoadOrStore runs the requested direction over the selected categories
// and returns a per-category outcome map. Invalid directions and
// selectors are rejected before any store traffic. The bucket is
// created only on the upload direction.
func (l *Loader) LoadOrStore(ctx context.Context, bucket string, direction Direction, selector string) (map[models.Category]Outcome, error) {
	if direction != DirectionUpload && direction != DirectionDownload {
		return nil, fmt.Errorf("invalid load direction %q (want %s or %s)", direction, DirectionUpload, DirectionDownload)
	}
	categories, err := models.ResolveSelector(selector)
	if err != nil {
		return nil, err
	}

	exists, err := l.EnsureBucket(ctx, bucket, direction == DirectionUpload)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", bucket)
	}

	outcomes := make(map[models.Category]Outcome, len(categories))
	for _, category := range categories {
		switch direction {
		case DirectionUpload:
			outcomes[category] = l.Upload(ctx, bucket, category)
		case DirectionDownload:
			outcomes[category] = l.Download(ctx, bucket, category)
		}
	}
	return outcomes, nil
}
