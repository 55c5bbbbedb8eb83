package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "banquet_calendar"

var (
	once sync.Once

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Count of booking API calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	upstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_seconds",
			Help:      "Latency of booking API calls.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Booking list cache lookups by result.",
		},
		[]string{"result"},
	)

	staleResponses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_responses_total",
			Help:      "Booking fetches discarded because a newer one was started.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(upstreamRequests, upstreamLatency, cacheLookups, staleResponses)
	})
}

func ObserveUpstream(op, outcome string, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(op, outcome).Inc()
	upstreamLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

func IncCacheHit() {
	cacheLookups.WithLabelValues("hit").Inc()
}

func IncCacheMiss() {
	cacheLookups.WithLabelValues("miss").Inc()
}

func IncStaleResponse() {
	staleResponses.Inc()
}
