// Package actuator drives the one-bit indicator line reflecting the current
// FIRE state.
package actuator

import (
	"fmt"

	"github.com/pyrosense/sentinel/internal/config"
)

// Line is the raw output bit. Set drives the physical level; hardware write
// errors are unrecoverable and escalate to the pipeline's error state.
type Line interface {
	Set(high bool) error
}

// Actuator maps the logical alert state onto the line, honoring polarity.
type Actuator struct {
	line       Line
	activeHigh bool
	state      bool
	driven     bool
}

func New(line Line, activeHigh bool) *Actuator {
	return &Actuator{line: line, activeHigh: activeHigh}
}

func NewFromConfig(cfg *config.Config) (*Actuator, error) {
	ac := cfg.Actuator
	switch ac.Mode {
	case config.ActuatorMemory:
		return New(NewMemoryLine(), ac.ActiveHigh), nil
	case config.ActuatorGPIO:
		return New(NewGPIOLine(ac.ValuePath), ac.ActiveHigh), nil
	default:
		return nil, fmt.Errorf("unknown actuator mode %q", ac.Mode)
	}
}

// SetAlert drives the line ON when on is true. Idempotent: repeating the
// same state skips the hardware write.
func (a *Actuator) SetAlert(on bool) error {
	if a.driven && a.state == on {
		return nil
	}

	if err := a.line.Set(on == a.activeHigh); err != nil {
		return err
	}

	a.state = on
	a.driven = true
	return nil
}

// Toggle flips the line; used by the error-state blink pattern.
func (a *Actuator) Toggle() error {
	return a.SetAlert(!a.state)
}

// State reports the logical alert state.
func (a *Actuator) State() bool {
	return a.state
}
