package config

import "errors"

const (
	DefaultPort              = 8871
	DefaultFramePeriodMS     = 100
	DefaultThresholdWarning  = 0.7
	DefaultThresholdCritical = 0.9
)

// Predictor backends.
const (
	PredictorMean = "mean"
	PredictorONNX = "onnx"
)

// Sensor modes.
const (
	SensorSynthetic = "synthetic"
	SensorImage     = "image"
)

// Actuator modes.
const (
	ActuatorMemory = "memory"
	ActuatorGPIO   = "gpio"
)

var (
	ErrZeroFramePeriod   = errors.New("frame_period_ms must be positive")
	ErrThresholdOrder    = errors.New("threshold_warning must be below threshold_critical")
	ErrThresholdRange    = errors.New("thresholds must lie in (0, 1]")
	ErrModelPathRequired = errors.New("model_path is required for the onnx predictor")
)
