// Package wav writes segmented RIFF/WAV files from raw interleaved PCM
// payloads, one second of audio per append, rotating to a new timestamped
// file at a fixed duration boundary.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jsheehan/pass/internal/xerrors"
)

const headerSize = 44

// Segment appends per-(sensor,channel) PCM to a rotating sequence of WAV
// files. It is safe for single-goroutine use (the ingest driver loop).
type Segment struct {
	directory string
	prefix    string
	duration  int
	rate      int

	logger *slog.Logger

	w              io.WriteCloser
	filename       string
	secondsWritten int

	open func(path string) (io.WriteCloser, error)
	now  func() time.Time
}

// NewSegment creates a segment writer. duration is the number of 1-second
// appends per file; rate is the sample rate (samples per second).
func NewSegment(directory, prefix string, duration, rate int, logger *slog.Logger) *Segment {
	if logger == nil {
		logger = slog.Default()
	}
	return &Segment{
		directory: directory,
		prefix:    prefix,
		duration:  duration,
		rate:      rate,
		logger:    logger,
		open: func(path string) (io.WriteCloser, error) {
			return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		},
		now: time.Now,
	}
}

// Filename returns the path of the segment currently being written to.
func (s *Segment) Filename() string {
	return s.filename
}

// SecondsWritten returns how many one-second appends have landed in the
// current segment file, in [0, duration).
func (s *Segment) SecondsWritten() int {
	return s.secondsWritten
}

// Append writes one second of 16-bit PCM for (sensor, channel) extracted
// directly from the raw interleaved payload (the same little-endian int16
// buffer the reassembler produces, before any calibration is applied).
// payload must hold sensorCount*channelCount*rate samples. It opens a new
// timestamped file and emits the header first when secondsWritten==0.
func (s *Segment) Append(payload []byte, sensorCount, channelCount, sensor, channel int) error {
	stride := sensorCount * channelCount
	needed := stride * s.rate * 2
	if len(payload) < needed {
		return xerrors.NewNoMemory("wav.append", nil)
	}

	if s.secondsWritten == 0 {
		if err := s.startSegment(); err != nil {
			return err
		}
	}

	buf := make([]byte, 2*s.rate)
	offset := sensor*channelCount + channel
	for t := 0; t < s.rate; t++ {
		idx := (t*stride + offset) * 2
		binary.LittleEndian.PutUint16(buf[2*t:], binary.LittleEndian.Uint16(payload[idx:idx+2]))
	}
	if _, err := s.w.Write(buf); err != nil {
		s.closeLocked()
		return xerrors.NewGeneric("wav.append", err)
	}

	s.secondsWritten++
	if s.secondsWritten == s.duration {
		err := s.closeLocked()
		s.secondsWritten = 0
		if err != nil {
			return xerrors.NewGeneric("wav.append", err)
		}
	}
	return nil
}

// startSegment opens a new file with a fresh timestamped name and writes
// the 44-byte RIFF/fmt/data header sized for the full planned duration.
func (s *Segment) startSegment() error {
	stamp := s.now().Format("2006.01.02.15.04.05")
	s.filename = fmt.Sprintf("%s/%s.%s.wav", s.directory, s.prefix, stamp)

	w, err := s.open(s.filename)
	if err != nil {
		return xerrors.NewGeneric("wav.start_segment", err)
	}
	s.w = w

	header := buildHeader(s.duration, s.rate)
	if _, err := s.w.Write(header); err != nil {
		s.closeLocked()
		return xerrors.NewGeneric("wav.start_segment", err)
	}
	return nil
}

// buildHeader assembles the 44-byte RIFF/fmt/data header. chunkSize fields
// reflect the planned segment length (duration*rate samples) and are never
// corrected after the fact, even if the segment is later truncated.
func buildHeader(duration, rate int) []byte {
	dataBytes := uint32(duration * rate * 2)
	totalLength := headerSize + dataBytes

	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], totalLength-8)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], 1) // mono
	binary.LittleEndian.PutUint32(header[24:28], uint32(rate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(rate*2)) // average bytes/sec
	binary.LittleEndian.PutUint16(header[32:34], 2)              // block align
	binary.LittleEndian.PutUint16(header[34:36], 16)             // bits per sample

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataBytes)

	return header
}

// Close releases the underlying file, if one is open. Any in-progress
// segment is left with the header it already wrote; no size correction is
// applied.
func (s *Segment) Close() error {
	return s.closeLocked()
}

func (s *Segment) closeLocked() error {
	if s.w == nil {
		return nil
	}
	err := s.w.Close()
	s.w = nil
	return err
}
