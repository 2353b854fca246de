package media

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"
)

// WAVReader provides streaming frame reads for 16-bit PCM WAV files.
// It is the file-backed chunk source for the detection pipeline, so it
// exposes raw little-endian PCM bytes rather than decoded samples.
type WAVReader struct {
	file          *os.File
	SampleRate    int
	Channels      int
	BitsPerSample int

	dataOffset int64
	dataSize   int64
	bytesRead  int64
}

// NewWAVReader opens a WAV file for streaming reads.
func NewWAVReader(path string) (*WAVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	reader := &WAVReader{file: f}
	if err := reader.parseHeader(); err != nil {
		f.Close()
		return nil, fmt.Errorf("invalid WAV file %s: %w", path, err)
	}
	return reader, nil
}

func (wr *WAVReader) parseHeader() error {
	header := make([]byte, 12)
	if _, err := io.ReadFull(wr.file, header); err != nil {
		return err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return fmt.Errorf("missing RIFF/WAVE header")
	}

	var fmtFound, dataFound bool
	for !fmtFound || !dataFound {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(wr.file, chunkHeader); err != nil {
			return err
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			fmtChunk := make([]byte, chunkSize)
			if _, err := io.ReadFull(wr.file, fmtChunk); err != nil {
				return err
			}
			audioFormat := binary.LittleEndian.Uint16(fmtChunk[0:2])
			if audioFormat != 1 {
				return fmt.Errorf("unsupported audio format: %d", audioFormat)
			}
			wr.Channels = int(binary.LittleEndian.Uint16(fmtChunk[2:4]))
			wr.SampleRate = int(binary.LittleEndian.Uint32(fmtChunk[4:8]))
			wr.BitsPerSample = int(binary.LittleEndian.Uint16(fmtChunk[14:16]))
			if wr.BitsPerSample != 16 {
				return fmt.Errorf("unsupported bits per sample: %d", wr.BitsPerSample)
			}
			fmtFound = true

			if extra := int64(chunkSize) - 16; extra > 0 {
				if _, err := wr.file.Seek(extra, io.SeekCurrent); err != nil {
					return err
				}
			}
		case "data":
			wr.dataOffset, _ = wr.file.Seek(0, io.SeekCurrent)
			wr.dataSize = int64(chunkSize)
			if _, err := wr.file.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return err
			}
			dataFound = true
		default:
			if _, err := wr.file.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return err
			}
		}
	}

	if _, err := wr.file.Seek(wr.dataOffset, io.SeekStart); err != nil {
		return err
	}
	return nil
}

func (wr *WAVReader) bytesPerFrame() int {
	return wr.Channels * (wr.BitsPerSample / 8)
}

// TotalFrames returns the number of sample frames in the data chunk.
func (wr *WAVReader) TotalFrames() int {
	return int(wr.dataSize) / wr.bytesPerFrame()
}

// FrameDuration converts a frame count into wall-clock audio duration.
func (wr *WAVReader) FrameDuration(frames int) time.Duration {
	if wr.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(frames) / float64(wr.SampleRate) * float64(time.Second))
}

// ReadFrames reads up to maxFrames sample frames and returns them as raw
// little-endian PCM bytes together with the actual frame count. The final
// read of a file is typically shorter than requested. Returns io.EOF when
// no frames remain.
func (wr *WAVReader) ReadFrames(maxFrames int) ([]byte, int, error) {
	if wr.bytesRead >= wr.dataSize {
		return nil, 0, io.EOF
	}
	if maxFrames <= 0 {
		maxFrames = 1024
	}

	bytesPerFrame := wr.bytesPerFrame()
	remaining := int((wr.dataSize - wr.bytesRead) / int64(bytesPerFrame))
	if remaining <= 0 {
		return nil, 0, io.EOF
	}
	if maxFrames > remaining {
		maxFrames = remaining
	}

	buf := make([]byte, maxFrames*bytesPerFrame)
	n, err := io.ReadFull(wr.file, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, 0, err
	}
	if n == 0 {
		return nil, 0, io.EOF
	}
	wr.bytesRead += int64(n)

	frames := n / bytesPerFrame
	return buf[:frames*bytesPerFrame], frames, nil
}

// Close closes the underlying file.
func (wr *WAVReader) Close() error {
	if wr.file == nil {
		return nil
	}
	err := wr.file.Close()
	wr.file = nil
	return err
}
