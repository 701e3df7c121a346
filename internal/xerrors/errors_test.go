package xerrors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"testing"
)

type fakeTimeoutErr struct{}

func (fakeTimeoutErr) Error() string { return "fake timeout" }
func (fakeTimeoutErr) Timeout() bool { return true }

func TestIsClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"no_connection", NewNoConnection("socket.dial", stdErrors.New("refused")), KindNoConnection},
		{"no_memory", NewNoMemory("bufpool.get", nil), KindNoMemory},
		{"generic", NewGeneric("demux.convert", nil), KindGeneric},
		{"gap_detected", NewGapDetected("reassembler.read", nil), KindGapDetected},
		{"no_data", NewNoData("socket.read", nil), KindNoData},
		{"publisher_failure", NewPublisherFailure("publish.post", stdErrors.New("503")), KindPublisherFailure},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !Is(tt.err, tt.kind) {
				t.Fatalf("expected Is(err, %s) = true", tt.kind)
			}
			for _, other := range []Kind{KindGeneric, KindNoConnection, KindNoMemory, KindGapDetected, KindNoData, KindPublisherFailure} {
				if other == tt.kind {
					continue
				}
				if Is(tt.err, other) {
					t.Fatalf("expected Is(err, %s) = false, kind is %s", other, tt.kind)
				}
			}
		})
	}
}

func TestUnwrapChain(t *testing.T) {
	root := stdErrors.New("io EOF")
	wrapped := fmt.Errorf("read: %w", root)
	e := NewNoConnection("socket.read", wrapped)
	if !stdErrors.Is(e, root) {
		t.Fatalf("errors.Is should reach root cause")
	}
	var xe *Error
	if !stdErrors.As(e, &xe) {
		t.Fatalf("errors.As should match *Error")
	}
	if xe.Op != "socket.read" {
		t.Fatalf("unexpected op: %s", xe.Op)
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil", nil, false},
		{"gap", NewGapDetected("reassembler.read", nil), false},
		{"publisher", NewPublisherFailure("publish.post", nil), false},
		{"no_connection", NewNoConnection("socket.dial", nil), true},
		{"no_memory", NewNoMemory("bufpool.get", nil), true},
		{"generic", NewGeneric("demux.convert", nil), true},
		{"no_data", NewNoData("socket.read", nil), true},
		{"plain", stdErrors.New("unclassified"), true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsFatal(tt.err); got != tt.fatal {
				t.Fatalf("IsFatal() = %v, want %v", got, tt.fatal)
			}
		})
	}
}

func TestIsGap(t *testing.T) {
	if !IsGap(NewGapDetected("reassembler.read", nil)) {
		t.Fatalf("expected gap classification")
	}
	if IsGap(NewNoConnection("socket.dial", nil)) {
		t.Fatalf("no_connection should not classify as gap")
	}
	if IsGap(nil) {
		t.Fatalf("nil should not classify as gap")
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(context.DeadlineExceeded) {
		t.Fatalf("expected context deadline recognized")
	}
	var ne error = fakeTimeoutErr{}
	if !IsTimeout(ne) {
		t.Fatalf("expected net-like timeout recognized")
	}
	if IsTimeout(nil) {
		t.Fatalf("nil should not be timeout")
	}
	if IsTimeout(stdErrors.New("plain")) {
		t.Fatalf("plain error should not be timeout")
	}
}

func TestErrorStrings(t *testing.T) {
	withCause := NewGeneric("demux.convert", stdErrors.New("bad stride"))
	if s := withCause.Error(); s == "" {
		t.Fatalf("expected non-empty error string")
	}
	withoutCause := NewGeneric("demux.convert", nil)
	if s := withoutCause.Error(); s == "" {
		t.Fatalf("expected non-empty error string without cause")
	}
}

func TestNilSafety(t *testing.T) {
	if Is(nil, KindGeneric) {
		t.Fatalf("nil should not match any kind")
	}
}
