package pipeline

import "github.com/pyrosense/sentinel/internal/model"

type AlertLevel int

const (
	AlertNone AlertLevel = iota
	AlertWarning
	AlertCritical
)

func (l AlertLevel) String() string {
	switch l {
	case AlertWarning:
		return "warning"
	case AlertCritical:
		return "critical"
	default:
		return "none"
	}
}

// DetectionResult is the per-frame classification. FireDetected holds iff
// AlertLevel is at least AlertWarning.
type DetectionResult struct {
	FireDetected bool
	Confidence   float32
	AlertLevel   AlertLevel
}

// Postprocessor applies the fixed confidence thresholds to the model's
// output distribution. Both boundaries are strict: confidence exactly at a
// threshold stays in the lower band, so quantized outputs at canonical
// values cannot oscillate across it.
type Postprocessor struct {
	warning  float32
	critical float32
}

func NewPostprocessor(warning, critical float64) *Postprocessor {
	return &Postprocessor{
		warning:  float32(warning),
		critical: float32(critical),
	}
}

// Process reads Output[ClassFire] and grades it. Pure; no side effects.
func (p *Postprocessor) Process(m *model.Model) DetectionResult {
	confidence := m.Output[model.ClassFire]

	result := DetectionResult{Confidence: confidence}
	if confidence > p.warning {
		result.FireDetected = true
		if confidence > p.critical {
			result.AlertLevel = AlertCritical
		} else {
			result.AlertLevel = AlertWarning
		}
	}

	return result
}
