package metrics

import (
	"time"
)

// The helpers below are safe to call before Init; they no-op when the
// registry has not been set up (unit tests, library embedding).

// RecordChunk observes one processed chunk and its latency.
func RecordChunk(callID string, elapsed time.Duration) {
	if ChunksProcessed == nil {
		return
	}
	ChunksProcessed.WithLabelValues(callID).Inc()
	ChunkProcessingTime.Observe(elapsed.Seconds())
}

// RecordTranscript counts a recognized segment.
func RecordTranscript(isFinal bool) {
	if TranscriptsTotal == nil {
		return
	}
	kind := "partial"
	if isFinal {
		kind = "final"
	}
	TranscriptsTotal.WithLabelValues(kind).Inc()
}

// RecordRiskLevel counts a produced risk assessment.
func RecordRiskLevel(level string) {
	if RiskLevelTotal == nil {
		return
	}
	RiskLevelTotal.WithLabelValues(level).Inc()
}

// RecordEscalation counts a honeypot activation.
func RecordEscalation() {
	if EscalationsTotal == nil {
		return
	}
	EscalationsTotal.Inc()
}

// CallStarted and CallEnded track the active call gauge.
func CallStarted() {
	if ActiveCalls != nil {
		ActiveCalls.Inc()
	}
}

func CallEnded() {
	if ActiveCalls != nil {
		ActiveCalls.Dec()
	}
}

// RecordAnalyzeRequest counts an analysis API request by outcome.
func RecordAnalyzeRequest(status string) {
	if AnalyzeRequestsTotal == nil {
		return
	}
	AnalyzeRequestsTotal.WithLabelValues(status).Inc()
}
