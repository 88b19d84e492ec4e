package pipeline

import (
	"testing"

	"github.com/pyrosense/sentinel/internal/model"
)

func processAt(t *testing.T, p float32) DetectionResult {
	t.Helper()

	m := &model.Model{}
	m.Output[model.ClassNoFire] = 1.0 - p
	m.Output[model.ClassFire] = p

	return NewPostprocessor(0.7, 0.9).Process(m)
}

// TestPostprocessGrading walks the confidence bands, including the exact
// threshold values, which stay in the lower band (strict inequalities).
func TestPostprocessGrading(t *testing.T) {
	tests := []struct {
		name  string
		p     float32
		fire  bool
		level AlertLevel
	}{
		{"zero", 0.0, false, AlertNone},
		{"low", 0.5, false, AlertNone},
		{"exactly warning threshold", 0.7, false, AlertNone},
		{"just above warning", 0.70196, true, AlertWarning},
		{"exactly critical threshold", 0.9, true, AlertWarning},
		{"just above critical", 0.90001, true, AlertCritical},
		{"certain", 1.0, true, AlertCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := processAt(t, tt.p)

			if res.FireDetected != tt.fire {
				t.Errorf("fire_detected: expected %v, got %v", tt.fire, res.FireDetected)
			}
			if res.AlertLevel != tt.level {
				t.Errorf("alert_level: expected %v, got %v", tt.level, res.AlertLevel)
			}
			if res.Confidence != tt.p {
				t.Errorf("confidence: expected %v, got %v", tt.p, res.Confidence)
			}
		})
	}
}

// TestPostprocessInvariant verifies fire_detected holds exactly when the
// alert level is at least warning, across a sweep of confidences.
func TestPostprocessInvariant(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		p := float32(i) / 1000.0
		res := processAt(t, p)

		if res.FireDetected != (res.AlertLevel >= AlertWarning) {
			t.Fatalf("p=%v: fire_detected=%v but alert_level=%v", p, res.FireDetected, res.AlertLevel)
		}
		if res.AlertLevel == AlertCritical && res.Confidence <= 0.9 {
			t.Fatalf("p=%v: critical with confidence %v", p, res.Confidence)
		}
	}
}
