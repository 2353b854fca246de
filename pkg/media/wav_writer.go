package media

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// WAVWriter writes mono 16-bit PCM samples into a WAV container. It is
// used to produce demo call recordings for file simulation runs.
type WAVWriter struct {
	file         *os.File
	sampleRate   int
	channels     int
	bytesWritten uint32
	finalized    bool
}

// NewWAVWriter creates a WAV writer and writes a placeholder header that
// Finalize patches with the real sizes.
func NewWAVWriter(file *os.File, sampleRate, channels int) (*WAVWriter, error) {
	if file == nil {
		return nil, fmt.Errorf("nil file provided for WAV writer")
	}
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	if channels <= 0 {
		channels = 1
	}

	w := &WAVWriter{
		file:       file,
		sampleRate: sampleRate,
		channels:   channels,
	}
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *WAVWriter) writeHeader() error {
	if _, err := w.file.Seek(0, 0); err != nil {
		return err
	}

	byteRate := uint32(w.sampleRate * w.channels * 2)
	blockAlign := uint16(w.channels * 2)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+w.bytesWritten)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], w.bytesWritten)

	_, err := w.file.Write(header)
	return err
}

// WriteSamples appends PCM samples to the data chunk.
func (w *WAVWriter) WriteSamples(samples []int16) error {
	if w.finalized {
		return fmt.Errorf("WAV writer already finalized")
	}

	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], uint16(s))
	}
	n, err := w.file.Write(buf)
	w.bytesWritten += uint32(n)
	return err
}

// Finalize patches the header sizes and leaves the file ready to read.
func (w *WAVWriter) Finalize() error {
	if w.finalized {
		return nil
	}
	w.finalized = true
	return w.writeHeader()
}

// GenerateToneFile writes a mono sine-tone WAV file, used by the CLI as a
// stand-in call recording when no input file is provided.
func GenerateToneFile(path string, sampleRate int, freqHz float64, seconds float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := NewWAVWriter(f, sampleRate, 1)
	if err != nil {
		return err
	}

	total := int(float64(sampleRate) * seconds)
	samples := make([]int16, total)
	for i := 0; i < total; i++ {
		v := 0.5 * math.Sin(2*math.Pi*freqHz*float64(i)/float64(sampleRate))
		samples[i] = int16(v * 32767)
	}
	if err := w.WriteSamples(samples); err != nil {
		return err
	}
	return w.Finalize()
}
