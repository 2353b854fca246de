package paralinguistic

import (
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// Analyzer extracts acoustic stress indicators from an audio chunk.
// Implementations never fail: extraction problems degrade to all-zero
// features, which downstream scoring reads as "no stress signal".
type Analyzer interface {
	Analyze(chunk models.AudioChunk) models.ParalinguisticFeatures
}

// NullAnalyzer is the degraded variant selected when feature extraction
// is disabled; it always returns zero features.
type NullAnalyzer struct{}

// Analyze returns zeroed defaults.
func (NullAnalyzer) Analyze(models.AudioChunk) models.ParalinguisticFeatures {
	return models.ParalinguisticFeatures{}
}
