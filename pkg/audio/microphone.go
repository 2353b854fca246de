package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// captureSampleRate is the fixed rate for live capture; the recognizer
// rebuilds its decoder if a chunk ever deviates from it.
const captureSampleRate = 16000

// StreamMicrophone captures live audio from the default input device and
// yields one chunk per capture block. Chunk duration is fixed by the block
// size. Buffer overflow is surfaced as a warning and capture continues;
// the channel is closed on ctx cancellation or a hard device error.
func (c *Chunker) StreamMicrophone(ctx context.Context) (<-chan models.AudioChunk, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	blockFrames := int(float64(captureSampleRate) * c.chunkDuration.Seconds())
	buffer := make([]int16, blockFrames)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(captureSampleRate), blockFrames, buffer)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"sample_rate":  captureSampleRate,
		"block_frames": blockFrames,
	}).Info("Microphone capture started")

	out := make(chan models.AudioChunk)
	go func() {
		defer close(out)
		defer func() {
			stream.Stop()
			stream.Close()
			portaudio.Terminate()
			c.logger.Info("Microphone capture stopped")
		}()

		for {
			if ctx.Err() != nil {
				return
			}

			err := stream.Read()
			if err != nil {
				if errors.Is(err, portaudio.InputOverflowed) {
					c.logger.Warn("Audio buffer overflow, dropping backlog")
				} else {
					c.logger.WithError(err).Error("Microphone read failed")
					return
				}
			}

			data := make([]byte, len(buffer)*2)
			for i, s := range buffer {
				binary.LittleEndian.PutUint16(data[i*2:i*2+2], uint16(s))
			}

			chunk := models.AudioChunk{
				Data:       data,
				Timestamp:  time.Now(),
				Duration:   c.chunkDuration,
				SampleRate: captureSampleRate,
			}

			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
