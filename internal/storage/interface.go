package storage

import (
	"context"

	"github.com/tabletoplab/bgg-harvester/internal/dataset"
	"github.com/tabletoplab/bgg-harvester/pkg/bgg"
)

// SnapshotStore defines the interface for snapshot persistence implementations
type SnapshotStore interface {
	SaveGameComments(ctx context.Context, game string, comments []bgg.Comment) error
	SaveDataset(ctx context.Context, ds *dataset.Dataset) error
	LoadDataset(ctx context.Context, path string) (*dataset.Dataset, error)
	AggregatePath() string
}

// StorageMetrics provides telemetry for storage operations
type StorageMetrics struct {
	OperationType string
	Duration      int64 // nanoseconds
	Success       bool
	Backend       string
	Error         error
}

// MetricsCollector receives storage operation metrics
type MetricsCollector interface {
	RecordMetric(metric StorageMetrics)
}
