package eventlog

import (
	"bytes"
	"errors"
	"testing"
)

// TestFrameLineFormat verifies the per-frame line is byte-exact.
func TestFrameLineFormat(t *testing.T) {
	tests := []struct {
		name       string
		frame      uint32
		confidence float32
		dtMS       uint32
		fire       bool
		want       string
	}{
		{"safe", 0, 0.0, 5, false, "[0] Confidence: 0.00% | Time: 5ms | Status: SAFE\n"},
		{"fire", 42, 1.0, 12, true, "[42] Confidence: 100.00% | Time: 12ms | Status: FIRE\n"},
		{"fractional", 3, 0.705, 99, true, "[3] Confidence: 70.50% | Time: 99ms | Status: FIRE\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := New(&buf)

			if err := s.Frame(tt.frame, tt.confidence, tt.dtMS, tt.fire); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("\n got %q\nwant %q", buf.String(), tt.want)
			}
		})
	}
}

// TestFireAlertLine verifies the alert line carries the running total.
func TestFireAlertLine(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	if err := s.FireAlert(3); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "  ⚠ FIRE ALERT (Total: 3)\n" {
		t.Errorf("got %q", buf.String())
	}
}

// TestStartupSequence verifies banner, model info and success lines.
func TestStartupSequence(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.Startup()
	s.ModelInfo(51200, 4096)
	s.ModelLoaded()

	want := "=== STM32 Fire Detection System ===\n" +
		"Initializing AI model...\n" +
		"  Model Size: 51200 bytes\n" +
		"  Input Buffer: 4.0 KB\n" +
		"✓ Model loaded successfully\n"
	if buf.String() != want {
		t.Errorf("\n got %q\nwant %q", buf.String(), want)
	}
}

// TestWriteErrorPropagates verifies sink failures surface to the loop.
func TestWriteErrorPropagates(t *testing.T) {
	s := New(failWriter{})

	if err := s.Frame(0, 0, 0, false); err == nil {
		t.Fatal("expected a write error")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

var errWrite = errors.New("device gone")
