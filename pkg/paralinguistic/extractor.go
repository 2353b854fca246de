package paralinguistic

import (
	"encoding/binary"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// Valid fundamental frequency range for human speech.
const (
	minF0 = 50.0
	maxF0 = 500.0
)

// Extractor computes prosody and voice-quality features from raw PCM16
// windows: pitch mean/variance from frame-wise autocorrelation F0,
// RMS intensity, jitter (period-to-period pitch perturbation) and
// shimmer (frame-to-frame amplitude perturbation in dB). Speaking rate
// is not reliably measurable at chunk granularity and stays zero.
type Extractor struct {
	logger    *logrus.Logger
	frameSize int
	hopSize   int
}

// NewExtractor creates the full-capability analyzer.
func NewExtractor(logger *logrus.Logger) *Extractor {
	frameSize := 1024
	return &Extractor{
		logger:    logger,
		frameSize: frameSize,
		hopSize:   frameSize / 4,
	}
}

// Analyze extracts features from one chunk. Empty or too-short chunks
// and any internal failure return zeroed defaults rather than an error;
// extraction must never abort the chunk loop.
func (e *Extractor) Analyze(chunk models.AudioChunk) (features models.ParalinguisticFeatures) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("panic", r).Warn("Feature extraction failed, using zero features")
			features = models.ParalinguisticFeatures{}
		}
	}()

	samples := pcm16ToFloat(chunk.Data)
	if len(samples) < e.frameSize {
		return models.ParalinguisticFeatures{}
	}

	var (
		f0Values  []float64
		rmsValues []float64
	)
	for i := 0; i+e.frameSize <= len(samples); i += e.hopSize {
		frame := samples[i : i+e.frameSize]
		rmsValues = append(rmsValues, rms(frame))

		f0 := e.estimateF0(frame, chunk.SampleRate)
		if f0 > minF0 && f0 < maxF0 {
			f0Values = append(f0Values, f0)
		}
	}

	features.IntensityMean = mean(rmsValues)

	if len(f0Values) > 0 {
		features.PitchMean = mean(f0Values)
		if features.PitchMean > 0 {
			// Normalized deviation, comparable across voices.
			features.PitchVariance = stddev(f0Values, features.PitchMean) / features.PitchMean
		}
		features.Jitter = perturbation(f0Values, features.PitchMean)
	}

	features.Shimmer = shimmerDB(rmsValues)
	return features
}

// estimateF0 runs autocorrelation pitch detection over one frame.
func (e *Extractor) estimateF0(frame []float64, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}

	minLag := int(float64(sampleRate) / maxF0)
	maxLag := int(float64(sampleRate) / minF0)
	if maxLag >= len(frame)/2 {
		maxLag = len(frame)/2 - 1
	}
	if minLag < 1 || maxLag <= minLag {
		return 0
	}

	bestVal := 0.0
	bestLag := 0
	for lag := minLag; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i < len(frame)-lag; i++ {
			sum += frame[i] * frame[i+lag]
		}
		if sum > bestVal {
			bestVal = sum
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return 0
	}
	return float64(sampleRate) / float64(bestLag)
}

// perturbation is the mean absolute cycle-to-cycle difference relative
// to the mean value, the classic local jitter measure.
func perturbation(values []float64, meanValue float64) float64 {
	if len(values) < 2 || meanValue == 0 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(values); i++ {
		sum += math.Abs(values[i] - values[i-1])
	}
	return sum / float64(len(values)-1) / meanValue
}

// shimmerDB is the mean absolute frame-to-frame amplitude ratio in dB.
func shimmerDB(amps []float64) float64 {
	var (
		sum   float64
		count int
	)
	for i := 1; i < len(amps); i++ {
		if amps[i] <= 0 || amps[i-1] <= 0 {
			continue
		}
		sum += math.Abs(20 * math.Log10(amps[i]/amps[i-1]))
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// pcm16ToFloat converts signed 16-bit little-endian samples to
// normalized amplitude in [-1, 1).
func pcm16ToFloat(data []byte) []float64 {
	samples := make([]float64, len(data)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
		samples[i] = float64(s) / 32768.0
	}
	return samples
}

func rms(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64, meanValue float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		diff := v - meanValue
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)))
}
