package asr

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	vosk "github.com/alphacep/vosk-api/go"
	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// modelDirs maps a language code to the expected model folder name.
var modelDirs = map[string]string{
	"en": "vosk-model-small-en-us-0.15",
	"hi": "vosk-model-small-hi-0.22",
}

// DefaultModelDir is used when no model directory is configured.
const DefaultModelDir = "models"

// decoder is the streaming interface the engine needs from the Vosk
// binding. Tests inject fakes through the recognizer's factory.
type decoder interface {
	AcceptWaveform(data []byte) bool
	Result() string
	PartialResult() string
	Free()
}

// decoderFactory builds a decoder bound to a fixed sample rate.
type decoderFactory func(sampleRate int) (decoder, error)

type voskDecoder struct {
	rec *vosk.VoskRecognizer
}

func (d *voskDecoder) AcceptWaveform(data []byte) bool {
	return d.rec.AcceptWaveform(data) != 0
}

func (d *voskDecoder) Result() string        { return d.rec.Result() }
func (d *voskDecoder) PartialResult() string { return d.rec.PartialResult() }
func (d *voskDecoder) Free()                 { d.rec.Free() }

// VoskRecognizer is a stateful offline recognizer bound to one language
// model. The decoder requires a fixed sample rate, so it is built lazily
// at the first chunk and rebuilt whenever the chunk sample rate changes.
// The loaded model is immutable after construction and safe to share.
type VoskRecognizer struct {
	logger     *logrus.Logger
	language   string
	newDecoder decoderFactory

	dec        decoder
	sampleRate int
}

// NewVoskRecognizer loads the offline model for the given language.
// A missing model directory is reported as ErrModelNotFound so callers
// can substitute the mock variant.
func NewVoskRecognizer(logger *logrus.Logger, language, modelDir string) (*VoskRecognizer, error) {
	folder, ok := modelDirs[language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	if modelDir == "" {
		modelDir = DefaultModelDir
	}

	modelPath := filepath.Join(modelDir, folder)
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
	}

	logger.WithFields(logrus.Fields{
		"language": language,
		"model":    modelPath,
	}).Info("Loading offline speech model")

	model, err := vosk.NewModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", modelPath, err)
	}

	return &VoskRecognizer{
		logger:   logger,
		language: language,
		newDecoder: func(sampleRate int) (decoder, error) {
			rec, err := vosk.NewRecognizer(model, float64(sampleRate))
			if err != nil {
				return nil, err
			}
			return &voskDecoder{rec: rec}, nil
		},
	}, nil
}

// Name returns the recognizer identifier.
func (r *VoskRecognizer) Name() string {
	return "vosk-" + r.language
}

// ProcessChunk feeds waveform bytes to the decoder and returns a final
// segment when a speech boundary was reached, a partial segment when the
// decoder has tentative text, or nothing.
func (r *VoskRecognizer) ProcessChunk(ctx context.Context, chunk models.AudioChunk) (*models.TranscriptSegment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.dec == nil || r.sampleRate != chunk.SampleRate {
		if r.dec != nil {
			r.dec.Free()
		}
		dec, err := r.newDecoder(chunk.SampleRate)
		if err != nil {
			r.dec = nil
			return nil, fmt.Errorf("building decoder at %d Hz: %w", chunk.SampleRate, err)
		}
		r.dec = dec
		r.sampleRate = chunk.SampleRate
	}

	if r.dec.AcceptWaveform(chunk.Data) {
		var res struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal([]byte(r.dec.Result()), &res); err != nil {
			return nil, fmt.Errorf("decoding final result: %w", err)
		}
		if res.Text == "" {
			return nil, nil
		}
		return &models.TranscriptSegment{
			Text:       res.Text,
			StartTime:  chunk.Timestamp,
			EndTime:    chunk.Timestamp.Add(chunk.Duration),
			Confidence: FinalConfidence,
			IsFinal:    true,
		}, nil
	}

	var partial struct {
		Partial string `json:"partial"`
	}
	if err := json.Unmarshal([]byte(r.dec.PartialResult()), &partial); err != nil {
		return nil, fmt.Errorf("decoding partial result: %w", err)
	}
	if partial.Partial == "" {
		return nil, nil
	}
	return &models.TranscriptSegment{
		Text:       partial.Partial,
		StartTime:  chunk.Timestamp,
		EndTime:    chunk.Timestamp.Add(chunk.Duration),
		Confidence: PartialConfidence,
		IsFinal:    false,
	}, nil
}
