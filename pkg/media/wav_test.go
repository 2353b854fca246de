package media

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestWAV(t *testing.T, sampleRate, channels int, samples []int16) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := NewWAVWriter(f, sampleRate, channels)
	require.NoError(t, err)
	require.NoError(t, w.WriteSamples(samples))
	require.NoError(t, w.Finalize())
	return path
}

func TestWAVRoundTrip(t *testing.T) {
	samples := make([]int16, 16000)
	for i := range samples {
		samples[i] = int16(i % 512)
	}
	path := writeTestWAV(t, 16000, 1, samples)

	reader, err := NewWAVReader(path)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, 16000, reader.SampleRate)
	assert.Equal(t, 1, reader.Channels)
	assert.Equal(t, 16, reader.BitsPerSample)
	assert.Equal(t, len(samples), reader.TotalFrames())

	data, frames, err := reader.ReadFrames(len(samples))
	require.NoError(t, err)
	assert.Equal(t, len(samples), frames)
	assert.Len(t, data, len(samples)*2)

	_, _, err = reader.ReadFrames(1024)
	assert.Equal(t, io.EOF, err)
}

func TestWAVReaderShortFinalRead(t *testing.T) {
	path := writeTestWAV(t, 16000, 1, make([]int16, 2500))

	reader, err := NewWAVReader(path)
	require.NoError(t, err)
	defer reader.Close()

	_, frames, err := reader.ReadFrames(1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, frames)

	_, frames, err = reader.ReadFrames(1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, frames)

	_, frames, err = reader.ReadFrames(1000)
	require.NoError(t, err)
	assert.Equal(t, 500, frames, "the final read is clipped to what remains")

	_, _, err = reader.ReadFrames(1000)
	assert.Equal(t, io.EOF, err)
}

func TestWAVReaderStereoFrames(t *testing.T) {
	// Interleaved stereo: 800 frames of two channels.
	path := writeTestWAV(t, 8000, 2, make([]int16, 1600))

	reader, err := NewWAVReader(path)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, 2, reader.Channels)
	assert.Equal(t, 800, reader.TotalFrames())

	data, frames, err := reader.ReadFrames(100)
	require.NoError(t, err)
	assert.Equal(t, 100, frames)
	assert.Len(t, data, 100*4)
}

func TestFrameDuration(t *testing.T) {
	path := writeTestWAV(t, 16000, 1, make([]int16, 16000))

	reader, err := NewWAVReader(path)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, time.Second, reader.FrameDuration(16000))
	assert.Equal(t, 500*time.Millisecond, reader.FrameDuration(8000))
}

func TestWAVReaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file at all"), 0o644))

	_, err := NewWAVReader(path)
	assert.Error(t, err)
}

func TestWAVReaderMissingFile(t *testing.T) {
	_, err := NewWAVReader(filepath.Join(t.TempDir(), "nope.wav"))
	assert.Error(t, err)
}

func TestGenerateToneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, GenerateToneFile(path, 16000, 440, 2))

	reader, err := NewWAVReader(path)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, 16000, reader.SampleRate)
	assert.Equal(t, 1, reader.Channels)
	assert.Equal(t, 32000, reader.TotalFrames())
}
