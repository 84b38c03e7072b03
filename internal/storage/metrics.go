package storage

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// SimpleMetricsCollector provides basic metrics collection for storage operations
type SimpleMetricsCollector struct {
	metrics []StorageMetrics
	mutex   sync.RWMutex
}

// NewSimpleMetricsCollector creates a new simple metrics collector
func NewSimpleMetricsCollector() *SimpleMetricsCollector {
	return &SimpleMetricsCollector{
		metrics: make([]StorageMetrics, 0),
	}
}

// RecordMetric records a storage operation metric
func (s *SimpleMetricsCollector) RecordMetric(metric StorageMetrics) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.metrics = append(s.metrics, metric)

	logger := log.With().
		Str("operation", metric.OperationType).
		Str("backend", metric.Backend).
		Int64("duration_ns", metric.Duration).
		Bool("success", metric.Success).
		Logger()

	if metric.Error != nil {
		logger = logger.With().Err(metric.Error).Logger()
	}

	logger.Debug().Msg("Storage operation metric recorded")
}

// GetMetrics returns all collected metrics
func (s *SimpleMetricsCollector) GetMetrics() []StorageMetrics {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	// Return a copy to prevent race conditions
	result := make([]StorageMetrics, len(s.metrics))
	copy(result, s.metrics)
	return result
}

// OperationStats aggregates metrics for one operation type
type OperationStats struct {
	Count         int64
	SuccessCount  int64
	TotalDuration int64
}

// GetMetricsSummary groups collected metrics by operation type
func (s *SimpleMetricsCollector) GetMetricsSummary() map[string]*OperationStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := make(map[string]*OperationStats)
	for _, metric := range s.metrics {
		stats := summary[metric.OperationType]
		if stats == nil {
			stats = &OperationStats{}
			summary[metric.OperationType] = stats
		}
		stats.Count++
		stats.TotalDuration += metric.Duration
		if metric.Success {
			stats.SuccessCount++
		}
	}
	return summary
}
