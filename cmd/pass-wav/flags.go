package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// version is injected at build time with -ldflags "-X main.version=...". Defaults to dev.
var version = "dev"

// cliConfig holds user-supplied flag values, mirroring multi_wav_file.c's
// cmd_options: -c/-d/-e/-h/-o/-p/-r/-s/-v, plus -w (the original hardcodes
// its output directory to "./").
type cliConfig struct {
	sensors    int
	channels   int
	duration   int
	endianSwap bool
	hasHeader  bool

	origin string
	port   int
	rate   int

	directory string
	logLevel  string

	showVersion bool
}

func parseFlags(args []string) (*cliConfig, error) {
	fs := flag.NewFlagSet("pass-wav", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	cfg := &cliConfig{}

	fs.IntVar(&cfg.sensors, "s", 1, "number of sensors")
	fs.IntVar(&cfg.channels, "c", 1, "number of channels")
	fs.IntVar(&cfg.duration, "d", 60, "WAV segment duration in seconds")
	fs.BoolVar(&cfg.endianSwap, "e", false, "byte-swap each 16-bit sample before writing")
	fs.BoolVar(&cfg.hasHeader, "h", true, "stream carries the magic-byte frame header")
	fs.StringVar(&cfg.origin, "o", "127.0.0.1", "acquisition source host")
	fs.IntVar(&cfg.port, "p", 1234, "acquisition source port")
	fs.IntVar(&cfg.rate, "r", 500000, "sample rate")
	fs.StringVar(&cfg.directory, "w", ".", "directory WAV segments are written to")
	fs.StringVar(&cfg.logLevel, "v", "info", "log level: debug|info|warn|error")
	fs.BoolVar(&cfg.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.sensors < 1 {
		return nil, errors.New("-s sensors must be >= 1")
	}
	if cfg.channels < 1 {
		return nil, errors.New("-c channels must be >= 1")
	}
	if cfg.rate < 1 {
		return nil, errors.New("-r sample rate must be >= 1")
	}
	if cfg.duration < 1 {
		return nil, errors.New("-d duration must be >= 1")
	}
	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("-p port out of range: %d", cfg.port)
	}
	switch cfg.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid -v log level %q", cfg.logLevel)
	}

	return cfg, nil
}
