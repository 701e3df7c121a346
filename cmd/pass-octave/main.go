package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsheehan/pass/internal/logger"
	"github.com/jsheehan/pass/internal/pass/ingest"
	"github.com/jsheehan/pass/internal/pass/publish"
)

// octaveBandLower and octaveBandUpper match the original acquisition
// tool's fixed aggregation range; this CLI does not expose it as a flag.
const (
	octaveBandLower = 10
	octaveBandUpper = 36

	decibelReference  = 1.0
	decibelCorrection = 0.0

	publishTimeout = 5 * time.Second
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
	log := logger.Logger().With("component", "pass-octave")

	publisher := publish.NewHTTPPublisher(cfg.url, "octavebands", publishTimeout, log)
	defer publisher.Close()

	sink := ingest.NewOctaveSink(cfg.rate, octaveBandLower, octaveBandUpper, decibelReference, decibelCorrection, publisher)

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

	log.Info("starting octave-band ingest", "origin", cfg.origin, "port", cfg.port, "version", version)
	if err := loop.Run(ctx); err != nil {
		log.Error("ingest loop exited", "error", err)
		os.Exit(1)
	}
	log.Info("ingest loop stopped")
}
