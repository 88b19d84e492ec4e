// Package sensor abstracts the camera-like frame source. A sensor fills the
// caller's buffer with up to cap(buf) grayscale bytes per frame.
package sensor

import (
	"errors"
	"fmt"

	"github.com/pyrosense/sentinel/internal/config"
)

var ErrExhausted = errors.New("sensor has no more frames")

type Sensor interface {
	// Capture writes the next frame into buf and returns the number of
	// bytes written, which is at most len(buf).
	Capture(buf []byte) (int, error)
}

func NewFromConfig(cfg *config.Config) (Sensor, error) {
	sc := cfg.Sensor
	switch sc.Mode {
	case config.SensorSynthetic:
		return NewSynthetic(), nil
	case config.SensorImage:
		return NewImage(sc.ImagePath)
	default:
		return nil, fmt.Errorf("unknown sensor mode %q", sc.Mode)
	}
}

// Synthetic produces the demo ramp pattern: every byte of frame n holds
// n mod 256.
type Synthetic struct {
	frame uint32
}

func NewSynthetic() *Synthetic {
	return &Synthetic{}
}

func (s *Synthetic) Capture(buf []byte) (int, error) {
	v := byte(s.frame % 256)
	for i := range buf {
		buf[i] = v
	}
	s.frame++
	return len(buf), nil
}

// Replay plays back a scripted frame sequence, then reports ErrExhausted.
type Replay struct {
	frames [][]byte
	next   int
}

func NewReplay(frames ...[]byte) *Replay {
	return &Replay{frames: frames}
}

func (s *Replay) Capture(buf []byte) (int, error) {
	if s.next >= len(s.frames) {
		return 0, ErrExhausted
	}
	n := copy(buf, s.frames[s.next])
	s.next++
	return n, nil
}
