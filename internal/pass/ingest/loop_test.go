package ingest

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/jsheehan/pass/internal/pass/publish"
	"github.com/jsheehan/pass/internal/pass/wav"
)

func encodeFrame(sampleRate int, base int16) []byte {
	buf := make([]byte, sampleRate*2)
	for i := 0; i < sampleRate; i++ {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(base+int16(i)))
	}
	return buf
}

func listenerHostPort(t *testing.T, ln net.Listener) (string, int) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		t.Fatalf("split addr: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}
	return host, port
}

func TestLoopProcessesFramesUntilEOF(t *testing.T) {
	t.Parallel()

	// Large enough that AggregateOctaveBands(10, 11), which indexes up to
	// bin 11 of the power spectrum, stays within OutputRate=sampleRate/2+1.
	const sampleRate = 64

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.Write(encodeFrame(sampleRate, 0))
		conn.Write(encodeFrame(sampleRate, 10))
	}()

	host, port := listenerHostPort(t, ln)

	recorder := publish.NewRecordingPublisher()
	octave := NewOctaveSink(sampleRate, 10, 11, 1.0, 0.0, recorder)

	dir := t.TempDir()
	wavSink := NewWavSink(func(sensor, channel int) *wav.Segment {
		return wav.NewSegment(dir, fmt.Sprintf("s%dc%d", sensor, channel), 10, sampleRate, nil)
	})
	defer wavSink.Close()

	cfg := Config{Host: host, Port: port, SensorCount: 1, ChannelCount: 1, SampleRate: sampleRate, Gradient: 1}
	loop := NewLoop(cfg, []Sink{octave, wavSink}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := loop.Run(ctx); err == nil {
		t.Fatalf("expected Run to return an error once the source closes the connection")
	}

	results := recorder.Results()
	if len(results) != 2 {
		t.Fatalf("expected 2 published results, got %d", len(results))
	}
	for _, r := range results {
		if r.Type != "octavebands" {
			t.Fatalf("expected type octavebands, got %q", r.Type)
		}
	}
}

func TestLoopStopsOnPreCancelledContext(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(50 * time.Millisecond)
	}()

	host, port := listenerHostPort(t, ln)

	cfg := Config{Host: host, Port: port, SensorCount: 1, ChannelCount: 1, SampleRate: 4, Gradient: 1}
	loop := NewLoop(cfg, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("expected Run to return nil on pre-cancelled context, got %v", err)
	}
}

func TestLoopReturnsErrorWhenSourceUnreachable(t *testing.T) {
	t.Parallel()

	cfg := Config{Host: "127.0.0.1", Port: 1, SensorCount: 1, ChannelCount: 1, SampleRate: 4, Gradient: 1}
	loop := NewLoop(cfg, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := loop.Run(ctx); err == nil {
		t.Fatalf("expected error dialing an unreachable source")
	}
}
