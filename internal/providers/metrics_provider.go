package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"sfd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncSubmissionsTotal(outcome string)
	ObservePersistenceDuration(duration time.Duration)
	SetSentimentCounts(positive, neutral, negative int)
}

// RecordCounter is the slice of the feedback service the gauge funcs
// need. Declared here to keep the provider free of a services import.
type RecordCounter interface {
	Count() int
	ArchivedCount() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	submissionsTotal    *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	sentimentCounts     *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncSubmissionsTotal(outcome string) {
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetSentimentCounts(positive, neutral, negative int) {
	m.sentimentCounts.WithLabelValues("positive").Set(float64(positive))
	m.sentimentCounts.WithLabelValues("neutral").Set(float64(neutral))
	m.sentimentCounts.WithLabelValues("negative").Set(float64(negative))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, counter RecordCounter) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sfd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sfd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sfd_cache_hits_total",
			Help: "Total number of aggregation cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sfd_cache_misses_total",
			Help: "Total number of aggregation cache misses",
		}),

		submissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sfd_submissions_total",
			Help: "Feedback submissions by outcome",
		}, []string{"outcome"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sfd_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		sentimentCounts: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sfd_sentiment_records",
			Help: "Current record count per sentiment bucket",
		}, []string{"sentiment"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sfd_records_total",
		Help: "Total number of feedback records in the store",
	}, func() float64 {
		return float64(counter.Count())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sfd_records_archived",
		Help: "Number of archived feedback records",
	}, func() float64 {
		return float64(counter.ArchivedCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncSubmissionsTotal(_ string)                     {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetSentimentCounts(_, _, _ int)                   {}
