// Package publish delivers processed sample arrays (octave bands, decibel
// levels, or raw spectra) to an external collector over HTTP.
package publish

import (
	"context"
	"sync"
	"time"
)

// Result is one published measurement for a single (sensor, channel) pair.
type Result struct {
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Sensor  int       `json:"sensor"`
	Channel int       `json:"channel"`
	Values  []float64 `json:"values"`
}

// Publisher delivers a Result to wherever measurements are consumed.
// Implementations must be safe for repeated sequential calls from the
// ingest driver loop; they are never called concurrently by this package.
type Publisher interface {
	Publish(ctx context.Context, result Result) error
	Close() error
}

// Status mirrors Destination's status enum, generalized from connection
// state to publish outcome.
type Status int

const (
	StatusIdle Status = iota
	StatusOK
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Metrics tracks publish activity, mirroring DestinationMetrics.
type Metrics struct {
	Sent         uint64
	Dropped      uint64
	LastSentTime time.Time
	LastError    error
}

type metricsBox struct {
	mu sync.RWMutex
	m  Metrics
	s  Status
}

func (b *metricsBox) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m.Sent++
	b.m.LastSentTime = time.Now()
	b.m.LastError = nil
	b.s = StatusOK
}

func (b *metricsBox) recordFailure(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m.Dropped++
	b.m.LastError = err
	b.s = StatusError
}

func (b *metricsBox) snapshot() (Metrics, Status) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.m, b.s
}

// NopPublisher discards every result. Used for dry-run / WAV-only
// deployments where no external collector is configured.
type NopPublisher struct{ box metricsBox }

// NewNopPublisher returns a Publisher that always succeeds and does nothing.
func NewNopPublisher() *NopPublisher { return &NopPublisher{} }

func (p *NopPublisher) Publish(_ context.Context, _ Result) error {
	p.box.recordSuccess()
	return nil
}

func (p *NopPublisher) Close() error { return nil }

// Metrics returns a snapshot of publish activity.
func (p *NopPublisher) Metrics() (Metrics, Status) { return p.box.snapshot() }

// RecordingPublisher captures every published Result in memory. Used by
// tests and for offline inspection of what would have been sent.
type RecordingPublisher struct {
	box     metricsBox
	mu      sync.Mutex
	results []Result
	failNext error
}

// NewRecordingPublisher returns a Publisher that records results instead
// of sending them anywhere.
func NewRecordingPublisher() *RecordingPublisher { return &RecordingPublisher{} }

func (p *RecordingPublisher) Publish(_ context.Context, result Result) error {
	p.mu.Lock()
	if p.failNext != nil {
		err := p.failNext
		p.failNext = nil
		p.mu.Unlock()
		p.box.recordFailure(err)
		return err
	}
	cp := make([]float64, len(result.Values))
	copy(cp, result.Values)
	result.Values = cp
	p.results = append(p.results, result)
	p.mu.Unlock()
	p.box.recordSuccess()
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

// Results returns every Result recorded so far.
func (p *RecordingPublisher) Results() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Result, len(p.results))
	copy(out, p.results)
	return out
}

// FailNext makes the next call to Publish return err instead of recording.
func (p *RecordingPublisher) FailNext(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = err
}

// Metrics returns a snapshot of publish activity.
func (p *RecordingPublisher) Metrics() (Metrics, Status) { return p.box.snapshot() }
