package audio

import (
	"context"
	"encoding/binary"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/media"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// DefaultChunkDuration is the analysis window used when none is configured.
const DefaultChunkDuration = time.Second

// Chunker slices a continuous audio source into fixed-duration windows.
// File playback is paced by each chunk's real audio length so downstream
// consumers observe data at live-call speed.
type Chunker struct {
	logger        *logrus.Logger
	chunkDuration time.Duration
}

// NewChunker creates a chunker producing windows of the given duration.
func NewChunker(logger *logrus.Logger, chunkDuration time.Duration) *Chunker {
	if chunkDuration <= 0 {
		chunkDuration = DefaultChunkDuration
	}
	return &Chunker{
		logger:        logger,
		chunkDuration: chunkDuration,
	}
}

// ChunkDuration returns the configured target window length.
func (c *Chunker) ChunkDuration() time.Duration {
	return c.chunkDuration
}

// StreamFile emulates a live call from a WAV file. It yields chunks on the
// returned channel and, after each one, suspends for the chunk's real audio
// duration. The final chunk of a file may be shorter than the configured
// window; its duration is computed from the actual frame count. The channel
// is closed at end of file or when ctx is cancelled.
func (c *Chunker) StreamFile(ctx context.Context, path string) (<-chan models.AudioChunk, error) {
	reader, err := media.NewWAVReader(path)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"file":        path,
		"sample_rate": reader.SampleRate,
		"channels":    reader.Channels,
		"frames":      reader.TotalFrames(),
	}).Info("Streaming audio file")

	framesPerChunk := int(float64(reader.SampleRate) * c.chunkDuration.Seconds())
	out := make(chan models.AudioChunk)

	go func() {
		defer close(out)
		defer reader.Close()

		for {
			data, frames, err := reader.ReadFrames(framesPerChunk)
			if err == io.EOF {
				return
			}
			if err != nil {
				c.logger.WithError(err).WithField("file", path).Error("Failed reading audio frames")
				return
			}

			if reader.Channels > 1 {
				data = downmixToMono(data, reader.Channels)
			}

			duration := reader.FrameDuration(frames)
			chunk := models.AudioChunk{
				Data:       data,
				Timestamp:  time.Now(),
				Duration:   duration,
				SampleRate: reader.SampleRate,
			}

			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}

			// Pace playback at the chunk's real-time length.
			select {
			case <-time.After(duration):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// downmixToMono averages interleaved channels into a single mono stream.
func downmixToMono(data []byte, channels int) []byte {
	bytesPerFrame := channels * 2
	frames := len(data) / bytesPerFrame
	mono := make([]byte, frames*2)

	for f := 0; f < frames; f++ {
		var sum int
		for ch := 0; ch < channels; ch++ {
			offset := f*bytesPerFrame + ch*2
			sum += int(int16(binary.LittleEndian.Uint16(data[offset : offset+2])))
		}
		binary.LittleEndian.PutUint16(mono[f*2:f*2+2], uint16(int16(sum/channels)))
	}
	return mono
}
