package asr

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// Recognition confidence is fixed per result kind because the offline
// decoder does not expose per-result confidence in streaming mode.
const (
	FinalConfidence   = 1.0
	PartialConfidence = 0.5
)

// Sentinel errors surfaced at recognizer construction.
var (
	ErrModelNotFound       = errors.New("speech model not found")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Recognizer converts an audio chunk into a transcript segment. A nil
// segment with nil error means no speech boundary was reached yet.
type Recognizer interface {
	// Name returns the recognizer identifier for logging.
	Name() string

	// ProcessChunk feeds one audio chunk to the engine. Errors are
	// per-chunk and recoverable; callers degrade them to no-result.
	ProcessChunk(ctx context.Context, chunk models.AudioChunk) (*models.TranscriptSegment, error)
}

// Config selects the recognizer variant at pipeline construction.
type Config struct {
	// UseMock forces the mock recognizer regardless of model availability.
	UseMock bool

	// Language is "en", "hi", or "mix" for dual-language fusion.
	Language string

	// ModelDir is the directory holding the offline model folders.
	ModelDir string
}

// New builds the recognizer described by cfg. Missing model files are a
// construction-time condition: the mock variant is substituted and the
// reason logged, so a per-chunk path never probes for capability.
func New(logger *logrus.Logger, cfg Config) (Recognizer, error) {
	if cfg.UseMock {
		return NewMockRecognizer(logger), nil
	}

	switch cfg.Language {
	case "en", "hi":
		rec, err := NewVoskRecognizer(logger, cfg.Language, cfg.ModelDir)
		if err != nil {
			if errors.Is(err, ErrModelNotFound) {
				logger.WithError(err).Warn("Offline model unavailable, falling back to mock recognizer")
				return NewMockRecognizer(logger), nil
			}
			return nil, err
		}
		return rec, nil
	case "mix":
		rec, err := NewFusionRecognizer(logger, cfg.ModelDir)
		if err != nil {
			if errors.Is(err, ErrModelNotFound) {
				logger.WithError(err).Warn("Offline models unavailable, falling back to mock recognizer")
				return NewMockRecognizer(logger), nil
			}
			return nil, err
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, cfg.Language)
	}
}
