package semantic

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

const (
	// relevanceThreshold downgrades weak embedding matches to NEUTRAL.
	relevanceThreshold = 0.25

	// fallbackConfidence is the fixed confidence of a keyword match.
	fallbackConfidence = 0.8

	// minWords is the shortest utterance classified beyond NEUTRAL;
	// one- and two-word fragments produce too many false positives.
	minWords = 3
)

// Analyzer classifies transcript text into a scam-narrative intent by
// embedding similarity against category prototype phrases, with a
// keyword-matching fallback when no encoder is available. Capability
// probing happens once at construction, never per request.
type Analyzer struct {
	logger  *logrus.Logger
	encoder Encoder

	// protoVectors[i] are the embeddings of scamPrototypes[i].Phrases.
	protoVectors [][][]float32
}

// NewAnalyzer builds the analyzer. When encoder is nil, or precomputing
// the prototype embeddings fails, the analyzer runs in keyword-fallback
// mode; it never fails construction for that reason.
func NewAnalyzer(logger *logrus.Logger, encoder Encoder) *Analyzer {
	a := &Analyzer{logger: logger}

	if encoder == nil {
		logger.Warn("No embedding encoder configured, semantic analyzer running on keyword fallback")
		return a
	}

	vectors := make([][][]float32, len(scamPrototypes))
	for i, proto := range scamPrototypes {
		embedded, err := encoder.Encode(context.Background(), proto.Phrases)
		if err != nil {
			logger.WithError(err).WithField("category", proto.Label).
				Warn("Failed to embed prototype phrases, semantic analyzer running on keyword fallback")
			return a
		}
		vectors[i] = embedded
	}

	a.encoder = encoder
	a.protoVectors = vectors
	logger.WithField("categories", len(scamPrototypes)).Info("Prototype embeddings precomputed")
	return a
}

// Analyze classifies the given text. It never panics or returns an
// error to the caller: unexpected failures yield the ERROR label.
func (a *Analyzer) Analyze(ctx context.Context, text string) (intent models.SemanticIntent) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.WithField("panic", r).Error("Semantic analysis failed")
			intent = models.SemanticIntent{Label: models.IntentError, Confidence: 0}
		}
	}()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.SemanticIntent{Label: models.IntentSilence, Confidence: 0}
	}

	lower := strings.ToLower(trimmed)
	if len(strings.Fields(trimmed)) < minWords &&
		!strings.Contains(lower, "hello") && !strings.Contains(lower, "hi") {
		return models.SemanticIntent{Label: models.IntentNeutral, Confidence: 0}
	}

	if a.encoder == nil {
		return a.keywordFallback(lower)
	}

	embedded, err := a.encoder.Encode(ctx, []string{trimmed})
	if err != nil {
		a.logger.WithError(err).Error("Failed to embed input text")
		return models.SemanticIntent{Label: models.IntentError, Confidence: 0}
	}
	input := embedded[0]

	bestLabel := models.IntentUnknown
	bestScore := 0.0
	for i, proto := range scamPrototypes {
		for _, vec := range a.protoVectors[i] {
			if score := cosineSimilarity(input, vec); score > bestScore {
				bestScore = score
				bestLabel = proto.Label
			}
		}
	}

	if bestScore < relevanceThreshold {
		bestLabel = models.IntentNeutral
	}

	return models.SemanticIntent{
		Label:      bestLabel,
		Confidence: bestScore,
		Keywords:   []string{trimmed},
	}
}

// keywordFallback does case-insensitive substring matching against the
// prototype phrases; the first hit wins with a fixed confidence.
func (a *Analyzer) keywordFallback(lowerText string) models.SemanticIntent {
	for _, proto := range scamPrototypes {
		for _, phrase := range proto.Phrases {
			if strings.Contains(lowerText, strings.ToLower(phrase)) {
				return models.SemanticIntent{
					Label:      proto.Label,
					Confidence: fallbackConfidence,
					Keywords:   []string{phrase},
				}
			}
		}
	}
	return models.SemanticIntent{Label: models.IntentNeutral, Confidence: 0}
}
