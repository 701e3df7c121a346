// Package ingest drives one acquisition stream end to end: dial, read,
// reassemble, demux per (sensor, channel), and hand the result to a set
// of sinks (octave-band publication, WAV segmentation, or both).
package ingest

import (
	"context"
	"log/slog"

	"github.com/jsheehan/pass/internal/logger"
	"github.com/jsheehan/pass/internal/pass"
	"github.com/jsheehan/pass/internal/xerrors"
)

// Loop owns the acquisition context and the set of sinks fed from it.
type Loop struct {
	cfg   Config
	sinks []Sink
	log   *slog.Logger
}

// NewLoop builds a Loop. log may be nil to use the package logger.
func NewLoop(cfg Config, sinks []Sink, log *slog.Logger) *Loop {
	cfg.applyDefaults()
	if log == nil {
		log = logger.Logger()
	}
	return &Loop{
		cfg:   cfg,
		sinks: sinks,
		log:   logger.WithContext(log, cfg.SensorCount, cfg.ChannelCount, cfg.SampleRate),
	}
}

// Run dials the acquisition source and processes frames until ctx is
// cancelled or a fatal error occurs. GapDetected is logged and the read
// loop re-enters; Generic and NoConnection terminate the loop; NoMemory is
// always fatal. A sink returning PublisherFailure is logged and does not
// stop the loop or the remaining sinks for that frame.
func (l *Loop) Run(ctx context.Context) error {
	pc := pass.NewContext(l.cfg.SensorCount, l.cfg.ChannelCount, l.cfg.SampleRate, l.cfg.HasHeader)
	defer pc.Close()

	if err := pc.Connect(l.cfg.Host, l.cfg.Port); err != nil {
		return err
	}
	l.log.Info("connected to acquisition source", "host", l.cfg.Host, "port", l.cfg.Port)

	samples := l.allocateSamples()

	for {
		select {
		case <-ctx.Done():
			l.log.Info("ingest loop cancelled")
			return nil
		default:
		}

		if err := pc.Read(); err != nil {
			if xerrors.IsGap(err) {
				l.log.Warn("gap detected, skipping frame", "err", err)
				continue
			}
			return err
		}

		if l.cfg.SwapEndian {
			pass.EndianSwap(pc.Payload())
		}

		if err := l.processFrame(ctx, pc, samples); err != nil {
			return err
		}
	}
}

func (l *Loop) allocateSamples() [][]*pass.SampleArray {
	samples := make([][]*pass.SampleArray, l.cfg.SensorCount)
	for s := range samples {
		samples[s] = make([]*pass.SampleArray, l.cfg.ChannelCount)
		for c := range samples[s] {
			samples[s][c] = pass.NewSampleArray(l.cfg.SampleRate)
		}
	}
	return samples
}

func (l *Loop) processFrame(ctx context.Context, pc *pass.Context, samples [][]*pass.SampleArray) error {
	frameLog := logger.WithFrame(l.log, pc.SequenceID)
	payload := pc.Payload()

	for s := 0; s < l.cfg.SensorCount; s++ {
		for c := 0; c < l.cfg.ChannelCount; c++ {
			array := samples[s][c]
			if err := pass.Demux(array, payload, l.cfg.SensorCount, l.cfg.ChannelCount, l.cfg.SampleRate, s, c, l.cfg.Gradient, l.cfg.Offset, pc.SequenceID); err != nil {
				return err
			}

			frame := Frame{
				Sensor:       s,
				Channel:      c,
				SensorCount:  l.cfg.SensorCount,
				ChannelCount: l.cfg.ChannelCount,
				SampleRate:   l.cfg.SampleRate,
				SequenceID:   pc.SequenceID,
				Payload:      payload,
				Samples:      array,
			}

			for _, sink := range l.sinks {
				if err := sink.Process(ctx, frame); err != nil {
					if xerrors.Is(err, xerrors.KindPublisherFailure) {
						logger.WithChannel(frameLog, s, c).Warn("sink failed, continuing", "err", err)
						continue
					}
					return err
				}
			}
		}
	}
	return nil
}
