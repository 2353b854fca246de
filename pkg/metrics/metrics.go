package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	registry     *prometheus.Registry
	registryOnce sync.Once

	// Pipeline metrics
	ChunksProcessed    *prometheus.CounterVec
	ChunkProcessingTime prometheus.Histogram
	TranscriptsTotal   *prometheus.CounterVec
	RiskLevelTotal     *prometheus.CounterVec
	EscalationsTotal   prometheus.Counter
	ActiveCalls        prometheus.Gauge

	// API metrics
	AnalyzeRequestsTotal *prometheus.CounterVec
)

// Init initializes all metrics and registers them with Prometheus.
func Init(logger *logrus.Logger) {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()

		ChunksProcessed = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "honeypot_chunks_processed_total",
				Help: "Total number of audio chunks processed",
			},
			[]string{"call_id"},
		)

		ChunkProcessingTime = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "honeypot_chunk_processing_seconds",
				Help:    "Time spent processing one audio chunk",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		)

		TranscriptsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "honeypot_transcripts_total",
				Help: "Total number of recognized transcript segments",
			},
			[]string{"kind"},
		)

		RiskLevelTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "honeypot_risk_level_total",
				Help: "Risk assessments produced, by level",
			},
			[]string{"level"},
		)

		EscalationsTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "honeypot_escalations_total",
				Help: "Number of calls escalated to the honeypot agent",
			},
		)

		ActiveCalls = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "honeypot_active_calls",
				Help: "Number of calls currently being processed",
			},
		)

		AnalyzeRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "honeypot_analyze_requests_total",
				Help: "Text analysis API requests, by status",
			},
			[]string{"status"},
		)

		registry.MustRegister(
			ChunksProcessed,
			ChunkProcessingTime,
			TranscriptsTotal,
			RiskLevelTotal,
			EscalationsTotal,
			ActiveCalls,
			AnalyzeRequestsTotal,
		)

		logger.Info("Prometheus metrics registered")
	})
}

// Handler returns the HTTP handler serving the metrics registry.
func Handler() http.Handler {
	if registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
