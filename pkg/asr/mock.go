package asr

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

const mockTranscript = "hello this is a test call"

// MockRecognizer is the testing/demo variant: it probabilistically emits
// a fixed placeholder transcript. It is only selected when no offline
// engine is available or when the configuration forces it.
type MockRecognizer struct {
	logger *logrus.Logger
	rng    *rand.Rand
}

// NewMockRecognizer creates a mock recognizer with its own RNG.
func NewMockRecognizer(logger *logrus.Logger) *MockRecognizer {
	logger.Info("Mock recognizer initialized")
	return &MockRecognizer{
		logger: logger,
		rng:    rand.New(rand.NewSource(rand.Int63())),
	}
}

// Name returns the recognizer identifier.
func (r *MockRecognizer) Name() string {
	return "mock"
}

// ProcessChunk emits the placeholder transcript for roughly one chunk in
// five, mimicking the cadence of a real decoder reaching speech boundaries.
func (r *MockRecognizer) ProcessChunk(ctx context.Context, chunk models.AudioChunk) (*models.TranscriptSegment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.rng.Float64() <= 0.8 {
		return nil, nil
	}
	return &models.TranscriptSegment{
		Text:       mockTranscript,
		StartTime:  chunk.Timestamp,
		EndTime:    chunk.Timestamp.Add(chunk.Duration),
		Confidence: 0.9,
		IsFinal:    true,
	}, nil
}
