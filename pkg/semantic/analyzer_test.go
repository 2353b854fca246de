package semantic

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

// fakeEncoder returns canned vectors per text, and a category one-hot
// for every prototype phrase so similarity is fully controlled.
type fakeEncoder struct {
	vectors map[string][]float32
	err     error
}

func newFakeEncoder() *fakeEncoder {
	f := &fakeEncoder{vectors: map[string][]float32{}}
	for i, proto := range scamPrototypes {
		vec := make([]float32, len(scamPrototypes)+1)
		vec[i] = 1
		for _, phrase := range proto.Phrases {
			f.vectors[phrase] = vec
		}
	}
	return f
}

func (f *fakeEncoder) categoryVector(label models.IntentLabel) []float32 {
	for i, proto := range scamPrototypes {
		if proto.Label == label {
			vec := make([]float32, len(scamPrototypes)+1)
			vec[i] = 1
			return vec
		}
	}
	return make([]float32, len(scamPrototypes)+1)
}

func (f *fakeEncoder) Encode(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if vec, ok := f.vectors[text]; ok {
			out[i] = vec
		} else {
			out[i] = make([]float32, len(scamPrototypes)+1)
		}
	}
	return out, nil
}

func TestAnalyzeSilence(t *testing.T) {
	a := NewAnalyzer(testLogger(), nil)

	for _, text := range []string{"", "   ", "\t\n"} {
		intent := a.Analyze(context.Background(), text)
		assert.Equal(t, models.IntentSilence, intent.Label)
		assert.Equal(t, 0.0, intent.Confidence)
	}
}

func TestAnalyzeShortUtteranceIsNeutral(t *testing.T) {
	a := NewAnalyzer(testLogger(), nil)

	intent := a.Analyze(context.Background(), "right now")
	assert.Equal(t, models.IntentNeutral, intent.Label)
	assert.Equal(t, 0.0, intent.Confidence)
}

func TestAnalyzeShortGreetingStillClassified(t *testing.T) {
	a := NewAnalyzer(testLogger(), nil)

	intent := a.Analyze(context.Background(), "Hello")
	assert.Equal(t, models.IntentGreeting, intent.Label)
	assert.Equal(t, fallbackConfidence, intent.Confidence)
}

func TestKeywordFallback(t *testing.T) {
	a := NewAnalyzer(testLogger(), nil)

	cases := map[string]models.IntentLabel{
		"sir you must buy a gift card today":              models.IntentPayment,
		"i am calling from the police station right now":  models.IntentAuthority,
		"there is a warrant for your arrest sir":          models.IntentFear,
		"you must act immediately or face consequences":   models.IntentUrgency,
		"the weather is quite nice here this time of day": models.IntentNeutral,
	}
	for text, want := range cases {
		intent := a.Analyze(context.Background(), text)
		assert.Equal(t, want, intent.Label, "text: %q", text)
	}
}

func TestKeywordFallbackRecordsMatchedPhrase(t *testing.T) {
	a := NewAnalyzer(testLogger(), nil)

	intent := a.Analyze(context.Background(), "please go and buy a gift card for me")
	require.Equal(t, models.IntentPayment, intent.Label)
	assert.Equal(t, []string{"Buy a gift card"}, intent.Keywords)
}

func TestEmbeddingClassification(t *testing.T) {
	enc := newFakeEncoder()
	enc.vectors["this is the bank security team calling"] = enc.categoryVector(models.IntentAuthority)

	a := NewAnalyzer(testLogger(), enc)
	require.NotNil(t, a.protoVectors)

	intent := a.Analyze(context.Background(), "this is the bank security team calling")
	assert.Equal(t, models.IntentAuthority, intent.Label)
	assert.InDelta(t, 1.0, intent.Confidence, 1e-6)
}

func TestRelevanceFloor(t *testing.T) {
	enc := newFakeEncoder()

	// Best category similarity is exactly 0.20, below the 0.25 floor.
	weak := make([]float32, len(scamPrototypes)+1)
	weak[0] = 0.20
	weak[len(scamPrototypes)] = float32(math.Sqrt(1 - 0.04))
	enc.vectors["some vaguely greeting like sentence"] = weak

	a := NewAnalyzer(testLogger(), enc)
	intent := a.Analyze(context.Background(), "some vaguely greeting like sentence")
	assert.Equal(t, models.IntentNeutral, intent.Label)
	assert.InDelta(t, 0.20, intent.Confidence, 1e-6)
}

func TestEncoderFailureAtConstructionFallsBack(t *testing.T) {
	enc := newFakeEncoder()
	enc.err = errors.New("embedding service down")

	a := NewAnalyzer(testLogger(), enc)

	// Construction degraded to keyword mode; classification still works.
	intent := a.Analyze(context.Background(), "sir you must buy a gift card today")
	assert.Equal(t, models.IntentPayment, intent.Label)
	assert.Equal(t, fallbackConfidence, intent.Confidence)
}

func TestEncoderFailurePerRequestReturnsError(t *testing.T) {
	enc := newFakeEncoder()
	a := NewAnalyzer(testLogger(), enc)
	require.NotNil(t, a.protoVectors)

	enc.err = errors.New("embedding service down")
	intent := a.Analyze(context.Background(), "this is a long enough sentence")
	assert.Equal(t, models.IntentError, intent.Label)
	assert.Equal(t, 0.0, intent.Confidence)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 3}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
}
