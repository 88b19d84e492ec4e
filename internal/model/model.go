package model

import (
	"errors"
	"fmt"
	"os"

	"github.com/pyrosense/sentinel/internal/config"
)

const (
	// InputLen is the length of the normalized input vector (32x32 grayscale).
	InputLen = 1024
	// OutputLen is the length of the class probability vector.
	OutputLen = 2
)

// Indices into the output vector. Output[ClassNoFire] + Output[ClassFire] = 1.
const (
	ClassNoFire = 0
	ClassFire   = 1
)

var (
	ErrInitFailed  = errors.New("model initialization failed")
	ErrInferFailed = errors.New("inference failed")
)

// Model is the process-lifetime inference context. All working buffers are
// fixed-capacity; the hot path never allocates. Only the pipeline loop
// touches a Model, so no locking is required.
type Model struct {
	Input  [InputLen]float32
	Output [OutputLen]float32

	// LastInferenceMS is the wall-clock duration of the most recent
	// predictor invocation.
	LastInferenceMS uint32

	blob        []byte
	initialized bool
}

// Init zeroes the working buffers and loads the model blob. Calling Init
// again after a successful call is a no-op.
func (m *Model) Init(blobPath string) error {
	if m.initialized {
		return nil
	}

	m.Input = [InputLen]float32{}
	m.Output = [OutputLen]float32{}

	if blobPath != "" {
		blob, err := os.ReadFile(blobPath)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInitFailed, err)
		}
		m.blob = blob
	}

	m.initialized = true
	return nil
}

// Blob returns the immutable model bytes. Callers must not mutate them.
func (m *Model) Blob() []byte {
	return m.blob
}

// Size reports the model blob length in bytes.
func (m *Model) Size() uint32 {
	return uint32(len(m.blob))
}

// SafeDefault forces the output vector to the no-fire distribution. Used
// when the predictor kernel fails so the frame still yields a SAFE result.
func (m *Model) SafeDefault() {
	m.Output[ClassNoFire] = 1.0
	m.Output[ClassFire] = 0.0
}

// Predictor is the opaque binary classifier. Infer reads Model.Input and
// must leave Model.Output holding a valid two-class distribution; the
// returned confidence equals Output[ClassFire].
type Predictor interface {
	Init(m *Model) error
	Infer(m *Model) (float32, error)
}

func NewPredictor(cfg *config.Config) (Predictor, error) {
	switch cfg.Predictor {
	case config.PredictorMean:
		return &MeanPredictor{}, nil
	case config.PredictorONNX:
		return NewONNXPredictor(cfg.ModelPath), nil
	default:
		return nil, fmt.Errorf("unknown predictor %q", cfg.Predictor)
	}
}
