package asr

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// FusionRecognizer runs two single-language engines against the same
// chunk and reconciles their outputs with a deterministic tie-break:
// exactly one non-empty result wins outright; when both produce text the
// longer string wins, on the heuristic that the correctly-matched
// language model yields more coherent, longer output. Evaluation order
// does not affect the result.
type FusionRecognizer struct {
	logger  *logrus.Logger
	primary Recognizer
	second  Recognizer
}

// NewFusionRecognizer builds the dual-language (en + hi) variant.
func NewFusionRecognizer(logger *logrus.Logger, modelDir string) (*FusionRecognizer, error) {
	en, err := NewVoskRecognizer(logger, "en", modelDir)
	if err != nil {
		return nil, err
	}
	hi, err := NewVoskRecognizer(logger, "hi", modelDir)
	if err != nil {
		return nil, err
	}
	return newFusion(logger, en, hi), nil
}

// newFusion wires arbitrary sub-engines, used directly by tests.
func newFusion(logger *logrus.Logger, a, b Recognizer) *FusionRecognizer {
	return &FusionRecognizer{logger: logger, primary: a, second: b}
}

// Name returns the recognizer identifier.
func (r *FusionRecognizer) Name() string {
	return "fusion(" + r.primary.Name() + "+" + r.second.Name() + ")"
}

// ProcessChunk evaluates both sub-engines sequentially. A failing engine
// is treated as having produced no text so one bad decode never hides
// the other engine's result.
func (r *FusionRecognizer) ProcessChunk(ctx context.Context, chunk models.AudioChunk) (*models.TranscriptSegment, error) {
	resA := r.runEngine(ctx, r.primary, chunk)
	resB := r.runEngine(ctx, r.second, chunk)

	textA := segmentText(resA)
	textB := segmentText(resB)

	switch {
	case textA == "" && textB == "":
		return nil, nil
	case textB == "":
		return resA, nil
	case textA == "":
		return resB, nil
	case len(textA) > len(textB):
		return resA, nil
	default:
		return resB, nil
	}
}

func (r *FusionRecognizer) runEngine(ctx context.Context, engine Recognizer, chunk models.AudioChunk) *models.TranscriptSegment {
	seg, err := engine.ProcessChunk(ctx, chunk)
	if err != nil {
		r.logger.WithError(err).WithField("engine", engine.Name()).Warn("Sub-engine failed for chunk")
		return nil
	}
	return seg
}

func segmentText(seg *models.TranscriptSegment) string {
	if seg == nil {
		return ""
	}
	return seg.Text
}
