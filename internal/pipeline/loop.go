package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pyrosense/sentinel/internal/actuator"
	"github.com/pyrosense/sentinel/internal/bus"
	"github.com/pyrosense/sentinel/internal/config"
	"github.com/pyrosense/sentinel/internal/eventlog"
	"github.com/pyrosense/sentinel/internal/hwclock"
	"github.com/pyrosense/sentinel/internal/model"
	"github.com/pyrosense/sentinel/internal/sensor"
)

// errorBlinkMS is the indicator toggle period in the error state.
const errorBlinkMS = 200

// ErrHardwareFault marks unrecoverable sensor, actuator or sink failures;
// the loop enters the error state and stays there.
var ErrHardwareFault = errors.New("hardware fault")

type State int

const (
	StateInit State = iota
	StateRunning
	StateError
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateError:
		return "error"
	default:
		return "init"
	}
}

// Deps are the collaborators the loop orchestrates. All of them are owned
// exclusively by the loop while Run is active.
type Deps struct {
	Log       *zap.Logger
	Model     *model.Model
	Predictor model.Predictor
	Sensor    sensor.Sensor
	Actuator  *actuator.Actuator
	Clock     hwclock.Clock
	Metrics   *Metrics
	Sink      *eventlog.Sink
	Bus       *bus.Bus
}

// Loop is the steady-state pipeline: capture, preprocess, infer,
// postprocess, actuate, record, log, pace. Single-threaded by contract;
// only Snapshot and CurrentState are safe to call from other goroutines.
type Loop struct {
	cfg  *config.Config
	log  *zap.Logger
	post *Postprocessor

	model     *model.Model
	predictor model.Predictor
	sensor    sensor.Sensor
	actuator  *actuator.Actuator
	clock     hwclock.Clock
	metrics   *Metrics
	sink      *eventlog.Sink
	bus       *bus.Bus

	session    string
	frameCount uint32
	raw        [model.InputLen]byte

	mu    sync.Mutex
	state State
	last  *bus.Event
}

func NewLoop(cfg *config.Config, d Deps) *Loop {
	return &Loop{
		cfg:       cfg,
		log:       d.Log,
		post:      NewPostprocessor(cfg.ThresholdWarning, cfg.ThresholdCritical),
		model:     d.Model,
		predictor: d.Predictor,
		sensor:    d.Sensor,
		actuator:  d.Actuator,
		clock:     d.Clock,
		metrics:   d.Metrics,
		sink:      d.Sink,
		bus:       d.Bus,
		session:   uuid.NewString(),
	}
}

// Session identifies this run on events and diagnostics.
func (l *Loop) Session() string {
	return l.session
}

// Run drives the state machine. It returns model.ErrInitFailed (wrapped)
// when initialization fails, ctx.Err() on cancellation, and the triggering
// fault after the error state has been cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.sink.Startup(); err != nil {
		return fmt.Errorf("event sink write: %w", err)
	}

	if err := l.init(); err != nil {
		l.sink.InitFailed()
		l.log.Error("model initialization failed", zap.Error(err))
		return err
	}

	l.setState(StateRunning)
	l.log.Info("pipeline running",
		zap.String("session", l.session),
		zap.String("predictor", l.cfg.Predictor),
		zap.Uint32("frame_period_ms", l.cfg.FramePeriodMS),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := l.step(); err != nil {
			l.log.Error("hardware fault, entering error state", zap.Error(err))
			l.errorState(ctx)
			return err
		}
	}
}

func (l *Loop) init() error {
	if err := l.model.Init(l.cfg.ModelPath); err != nil {
		return err
	}

	if err := l.predictor.Init(l.model); err != nil {
		return err
	}

	if err := l.sink.ModelInfo(l.model.Size(), model.InputLen*4); err != nil {
		return fmt.Errorf("event sink write: %w", err)
	}

	return l.sink.ModelLoaded()
}

// step processes exactly one frame. Any returned error is a hardware
// fault; a predictor failure is recovered locally with the safe default.
func (l *Loop) step() error {
	n, err := l.sensor.Capture(l.raw[:])
	if err != nil {
		return fmt.Errorf("%w: sensor capture: %w", ErrHardwareFault, err)
	}

	Preprocess(l.raw[:n], &l.model.Input)

	t0 := l.clock.NowMS()
	_, inferErr := l.predictor.Infer(l.model)
	dt := hwclock.Elapsed(t0, l.clock.NowMS())
	l.model.LastInferenceMS = dt

	if inferErr != nil {
		// One failed inference yields a SAFE frame; the loop keeps running.
		l.model.SafeDefault()
		l.log.Warn("inference failed, substituting safe output",
			zap.Error(inferErr), zap.Uint32("frame", l.frameCount))
	}

	result := l.post.Process(l.model)

	if err := l.actuator.SetAlert(result.FireDetected); err != nil {
		return fmt.Errorf("%w: actuator write: %w", ErrHardwareFault, err)
	}

	l.metrics.Record(dt)

	if err := l.sink.Frame(l.frameCount, result.Confidence, dt, result.FireDetected); err != nil {
		return fmt.Errorf("%w: event sink write: %w", ErrHardwareFault, err)
	}

	if result.FireDetected {
		total := l.metrics.RecordDetection()
		if err := l.sink.FireAlert(total); err != nil {
			return fmt.Errorf("%w: event sink write: %w", ErrHardwareFault, err)
		}
	}

	l.publish(result, dt)

	if dt < l.cfg.FramePeriodMS {
		l.clock.DelayMS(l.cfg.FramePeriodMS - dt)
	} else {
		// Frame overrun: counted, never aborted.
		l.metrics.RecordOverrun()
	}

	l.frameCount++
	return nil
}

func (l *Loop) publish(result DetectionResult, dtMS uint32) {
	ev := &bus.Event{
		Session:      l.session,
		Frame:        l.frameCount,
		Confidence:   result.Confidence,
		FireDetected: result.FireDetected,
		AlertLevel:   int(result.AlertLevel),
		InferenceMS:  dtMS,
	}

	l.mu.Lock()
	l.last = ev
	l.mu.Unlock()

	if l.bus != nil {
		if err := l.bus.Publish(ev); err != nil {
			l.log.Warn("event publish failed", zap.Error(err))
		}
	}
}

// errorState drives the indicator in a 200 ms toggle pattern until the
// context is cancelled. No further event-log output is produced.
func (l *Loop) errorState(ctx context.Context) {
	l.setState(StateError)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// The line itself may be the faulted device; keep the pacing
		// regardless so cancellation still works.
		if err := l.actuator.Toggle(); err != nil {
			l.log.Warn("indicator toggle failed", zap.Error(err))
		}
		l.clock.DelayMS(errorBlinkMS)
	}
}

func (l *Loop) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// CurrentState is safe to call from other goroutines.
func (l *Loop) CurrentState() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Snapshot returns the most recent detection event, if any frame has
// completed yet.
func (l *Loop) Snapshot() (bus.Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.last == nil {
		return bus.Event{}, false
	}
	return *l.last, true
}
