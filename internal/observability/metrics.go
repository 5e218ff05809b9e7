package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wirectl",
			Subsystem: "codec",
			Name:      "frames_decoded_total",
			Help:      "Total frames decoded by a stack, labeled by outcome status.",
		},
		[]string{"stack", "status"},
	)
	framesEncoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wirectl",
			Subsystem: "codec",
			Name:      "frames_encoded_total",
			Help:      "Total frames encoded by a stack, labeled by outcome status.",
		},
		[]string{"stack", "status"},
	)
	decodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wirectl",
			Subsystem: "codec",
			Name:      "decode_duration_seconds",
			Help:      "Time spent in Stack.Decode per frame.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stack"},
	)
	resyncSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wirectl",
			Subsystem: "resync",
			Name:      "bytes_skipped_total",
			Help:      "Bytes discarded while resynchronizing a stream after a framing error.",
		},
		[]string{"stack"},
	)
)

// RegisterMetrics registers every collector with the default registry.
// Safe to call more than once; only the first call has any effect.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesDecoded, framesEncoded, decodeDuration, resyncSkipped)
	})
}

// RecordDecode records the outcome and latency of one Stack.Decode call.
func RecordDecode(stack string, status string, duration time.Duration) {
	RegisterMetrics()
	framesDecoded.WithLabelValues(stack, status).Inc()
	decodeDuration.WithLabelValues(stack).Observe(duration.Seconds())
}

// RecordEncode records the outcome of one Stack.Encode/EncodeAppend call.
func RecordEncode(stack string, status string) {
	RegisterMetrics()
	framesEncoded.WithLabelValues(stack, status).Inc()
}

// RecordResyncSkip records bytes discarded while a resync reader hunts for
// the next valid sync prefix.
func RecordResyncSkip(stack string, n int) {
	RegisterMetrics()
	resyncSkipped.WithLabelValues(stack).Add(float64(n))
}
