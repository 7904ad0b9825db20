package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	matchStartedTotal     atomic.Uint64
	matchCompletedTotal   atomic.Uint64
	matchFailedTotal      atomic.Uint64
	semanticFallbackTotal atomic.Uint64
	batchItemFailedTotal  atomic.Uint64
	httpPanicTotal        atomic.Uint64

	matchDuration = newHistogram([]float64{10, 50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncMatchStarted increments the started counter.
func IncMatchStarted() {
	matchStartedTotal.Add(1)
}

// IncMatchCompleted increments the completed counter.
func IncMatchCompleted() {
	matchCompletedTotal.Add(1)
}

// IncMatchFailed increments the failed counter.
func IncMatchFailed() {
	matchFailedTotal.Add(1)
}

// IncSemanticFallback counts matches scored without a semantic result.
func IncSemanticFallback() {
	semanticFallbackTotal.Add(1)
}

// IncBatchItemFailed counts failed pairs inside batch requests.
func IncBatchItemFailed() {
	batchItemFailedTotal.Add(1)
}

// IncHTTPPanic counts panics recovered by the HTTP middleware.
func IncHTTPPanic() {
	httpPanicTotal.Add(1)
}

// ObserveMatchDurationMs records a match duration in milliseconds.
func ObserveMatchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	matchDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "match_started_total", "Total matches started", matchStartedTotal.Load())
	writeCounter(&buf, "match_completed_total", "Total matches completed", matchCompletedTotal.Load())
	writeCounter(&buf, "match_failed_total", "Total matches failed", matchFailedTotal.Load())
	writeCounter(&buf, "semantic_fallback_total", "Total matches scored without semantic analysis", semanticFallbackTotal.Load())
	writeCounter(&buf, "batch_item_failed_total", "Total failed batch items", batchItemFailedTotal.Load())
	writeCounter(&buf, "http_panic_total", "Total panics recovered while serving requests", httpPanicTotal.Load())
	writeHistogram(&buf, "match_duration_ms", "Match duration in milliseconds", matchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	// Observe already counts per upper bound, so bucket counts are cumulative.
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
