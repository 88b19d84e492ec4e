// Package eventlog writes the line-oriented event stream. The formats are a
// wire contract consumed by the serial console; they must stay byte-exact.
package eventlog

import (
	"fmt"
	"io"
	"os"

	"github.com/pyrosense/sentinel/internal/config"
)

type Sink struct {
	w io.Writer
}

func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

func NewFromConfig(cfg *config.Config) (*Sink, error) {
	if cfg.EventSink == "stdout" || cfg.EventSink == "" {
		return New(os.Stdout), nil
	}

	// A path, typically a serial device such as /dev/ttyUSB0.
	f, err := os.OpenFile(cfg.EventSink, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open event sink: %w", err)
	}
	return New(f), nil
}

// Startup announces the system before model initialization begins.
func (s *Sink) Startup() error {
	_, err := fmt.Fprintf(s.w, "=== STM32 Fire Detection System ===\nInitializing AI model...\n")
	return err
}

func (s *Sink) ModelLoaded() error {
	_, err := fmt.Fprintf(s.w, "✓ Model loaded successfully\n")
	return err
}

func (s *Sink) InitFailed() error {
	_, err := fmt.Fprintf(s.w, "ERROR: Model initialization failed\n")
	return err
}

// ModelInfo reports blob size and input working-set after a successful load.
func (s *Sink) ModelInfo(sizeBytes uint32, inputBytes int) error {
	_, err := fmt.Fprintf(s.w, "  Model Size: %d bytes\n  Input Buffer: %.1f KB\n",
		sizeBytes, float64(inputBytes)/1024.0)
	return err
}

// Frame emits the one-line-per-frame record. status is derived from fire.
func (s *Sink) Frame(frame uint32, confidence float32, dtMS uint32, fire bool) error {
	status := "SAFE"
	if fire {
		status = "FIRE"
	}
	_, err := fmt.Fprintf(s.w, "[%d] Confidence: %.2f%% | Time: %dms | Status: %s\n",
		frame, confidence*100, dtMS, status)
	return err
}

// FireAlert emits the second line on FIRE frames. total is the running
// count of fire frames including the current one.
func (s *Sink) FireAlert(total uint32) error {
	_, err := fmt.Fprintf(s.w, "  ⚠ FIRE ALERT (Total: %d)\n", total)
	return err
}
