package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsheehan/pass/internal/logger"
	"github.com/jsheehan/pass/internal/pass/ingest"
	"github.com/jsheehan/pass/internal/pass/wav"
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if cfg.showVersion {
		fmt.Println(version)
		return
	}

	logger.Init()
	if err := logger.SetLevel(cfg.logLevel); err != nil {
		fmt.Printf("Warning: invalid log level %q, using default\n", cfg.logLevel)
	}
	log := logger.Logger().With("component", "pass-wav")

	sink := ingest.NewWavSink(func(sensor, channel int) *wav.Segment {
		prefix := fmt.Sprintf("sensor%dchannel%d", sensor, channel)
		return wav.NewSegment(cfg.directory, prefix, cfg.duration, cfg.rate, log)
	})
	defer func() {
		if err := sink.Close(); err != nil {
			log.Error("error closing wav segments", "error", err)
		}
	}()

	loop := ingest.NewLoop(ingest.Config{
		Host:         cfg.origin,
		Port:         cfg.port,
		SensorCount:  cfg.sensors,
		ChannelCount: cfg.channels,
		SampleRate:   cfg.rate,
		HasHeader:    cfg.hasHeader,
		SwapEndian:   cfg.endianSwap,
		Gradient:     1.0,
		Offset:       0.0,
	}, []ingest.Sink{sink}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting wav-segment ingest", "origin", cfg.origin, "port", cfg.port, "directory", cfg.directory, "version", version)
	if err := loop.Run(ctx); err != nil {
		log.Error("ingest loop exited", "error", err)
		os.Exit(1)
	}
	log.Info("ingest loop stopped")
}
