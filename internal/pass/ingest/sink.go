package ingest

import (
	"context"
	"fmt"

	"github.com/jsheehan/pass/internal/pass"
	"github.com/jsheehan/pass/internal/pass/publish"
	"github.com/jsheehan/pass/internal/pass/spectral"
	"github.com/jsheehan/pass/internal/pass/wav"
)

// Frame is everything a Sink needs for one (sensor, channel) slice of one
// arrived block: the raw interleaved payload (shared across every sink for
// this block) and the demuxed, calibrated samples for this channel.
type Frame struct {
	Sensor, Channel int
	SensorCount     int
	ChannelCount    int
	SampleRate      int
	SequenceID      uint32
	Payload         []byte
	Samples         *pass.SampleArray
}

// Sink consumes one channel's worth of a frame. Implementations must not
// retain Frame.Samples beyond the call; the driver reuses it on the next
// frame for the same (sensor, channel).
type Sink interface {
	Process(ctx context.Context, frame Frame) error
}

// OctaveSink runs the FFT -> octave band -> decibel pipeline over a
// channel's samples and, if a publisher is configured, posts the result.
type OctaveSink struct {
	plan       *spectral.Plan
	lowerBand  int
	upperBand  int
	reference  float64
	correction float64
	publisher  publish.Publisher
}

// NewOctaveSink builds an OctaveSink. publisher may be nil to skip
// publication (e.g. a WAV-only deployment).
func NewOctaveSink(sampleRate, lowerBand, upperBand int, reference, correction float64, publisher publish.Publisher) *OctaveSink {
	return &OctaveSink{
		plan:       spectral.NewPlan(sampleRate),
		lowerBand:  lowerBand,
		upperBand:  upperBand,
		reference:  reference,
		correction: correction,
		publisher:  publisher,
	}
}

func (s *OctaveSink) Process(ctx context.Context, frame Frame) error {
	if err := s.plan.Execute(frame.Samples); err != nil {
		return err
	}
	if err := spectral.AggregateOctaveBands(frame.Samples, s.lowerBand, s.upperBand); err != nil {
		return err
	}
	spectral.Decibels(frame.Samples, s.reference, s.correction)

	if s.publisher == nil {
		return nil
	}
	values := make([]float64, frame.Samples.Count)
	copy(values, frame.Samples.Values[:frame.Samples.Count])
	result := publish.Result{
		Name:    fmt.Sprintf("Sensor %d, Channel %d", frame.Sensor, frame.Channel),
		Type:    "octavebands",
		Sensor:  frame.Sensor,
		Channel: frame.Channel,
		Values:  values,
	}
	return s.publisher.Publish(ctx, result)
}

// WavSink appends each channel's raw PCM to its own rotating WAV segment.
type WavSink struct {
	segments map[[2]int]*wav.Segment
	newSeg   func(sensor, channel int) *wav.Segment
}

// NewWavSink builds a WavSink. newSegment constructs the Segment for a
// given (sensor, channel) pair the first time it is needed (so each
// channel gets its own filename prefix).
func NewWavSink(newSegment func(sensor, channel int) *wav.Segment) *WavSink {
	return &WavSink{
		segments: make(map[[2]int]*wav.Segment),
		newSeg:   newSegment,
	}
}

func (s *WavSink) Process(_ context.Context, frame Frame) error {
	key := [2]int{frame.Sensor, frame.Channel}
	seg, ok := s.segments[key]
	if !ok {
		seg = s.newSeg(frame.Sensor, frame.Channel)
		s.segments[key] = seg
	}
	return seg.Append(frame.Payload, frame.SensorCount, frame.ChannelCount, frame.Sensor, frame.Channel)
}

// Close closes every segment file this sink has opened.
func (s *WavSink) Close() error {
	var first error
	for _, seg := range s.segments {
		if err := seg.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
