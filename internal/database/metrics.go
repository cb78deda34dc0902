package database

import (
	"database/sql"
	"sync/atomic"
	"time"
)

// Metrics collects database query metrics.
type Metrics struct {
	queryCount     int64
	queryDuration  int64 // nanoseconds
	errorCount     int64
	slowQueryCount int64

	execCount     int64
	selectCount   int64
	queryRowCount int64

	slowQueryThreshold time.Duration
}

// MetricsSnapshot provides a point-in-time view of metrics.
type MetricsSnapshot struct {
	QueryCount       int64         `json:"query_count"`
	ErrorCount       int64         `json:"error_count"`
	SlowQueryCount   int64         `json:"slow_query_count"`
	AvgQueryDuration time.Duration `json:"avg_query_duration"`
	DBStats          sql.DBStats   `json:"db_stats"`
	Timestamp        time.Time     `json:"timestamp"`
}

// NewMetrics creates a new metrics collector.
func NewMetrics(slowQueryThreshold time.Duration) *Metrics {
	if slowQueryThreshold <= 0 {
		slowQueryThreshold = 100 * time.Millisecond
	}
	return &Metrics{slowQueryThreshold: slowQueryThreshold}
}

// RecordQuery records metrics for a database query.
func (m *Metrics) RecordQuery(queryType string, duration time.Duration, err error) {
	atomic.AddInt64(&m.queryCount, 1)
	atomic.AddInt64(&m.queryDuration, int64(duration))

	if err != nil {
		atomic.AddInt64(&m.errorCount, 1)
	}
	if duration > m.slowQueryThreshold {
		atomic.AddInt64(&m.slowQueryCount, 1)
	}

	switch queryType {
	case "exec":
		atomic.AddInt64(&m.execCount, 1)
	case "query":
		atomic.AddInt64(&m.selectCount, 1)
	case "query_row":
		atomic.AddInt64(&m.queryRowCount, 1)
	}
}

// Snapshot returns the current metrics snapshot.
func (m *Metrics) Snapshot(stats sql.DBStats) *MetricsSnapshot {
	queryCount := atomic.LoadInt64(&m.queryCount)
	totalDuration := atomic.LoadInt64(&m.queryDuration)

	var avg time.Duration
	if queryCount > 0 {
		avg = time.Duration(totalDuration / queryCount)
	}

	return &MetricsSnapshot{
		QueryCount:       queryCount,
		ErrorCount:       atomic.LoadInt64(&m.errorCount),
		SlowQueryCount:   atomic.LoadInt64(&m.slowQueryCount),
		AvgQueryDuration: avg,
		DBStats:          stats,
		Timestamp:        time.Now(),
	}
}
