package pipeline

import "sync"

// Metrics accumulates running counters for the pipeline. In-memory only,
// process lifetime. Safe for concurrent reads from the status server.
type Metrics struct {
	mu sync.Mutex

	totalInferences    uint32
	truePositives      uint32
	falsePositives     uint32
	avgInferenceTimeMS uint32
	accuracy           float32
	overruns           uint32
	detections         uint32
}

// MetricsSnapshot is a point-in-time copy served over the status API.
type MetricsSnapshot struct {
	TotalInferences    uint32  `json:"total_inferences"`
	TruePositives      uint32  `json:"true_positives"`
	FalsePositives     uint32  `json:"false_positives"`
	AvgInferenceTimeMS uint32  `json:"avg_inference_time_ms"`
	Accuracy           float32 `json:"accuracy"`
	Overruns           uint32  `json:"frame_overruns"`
	Detections         uint32  `json:"detections"`
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record counts one completed inference and folds its duration into the
// running average. The recurrence avg = (avg + dt) / 2 is a half-weight
// smoother, not a true mean; it matches the device firmware and is kept
// deliberately.
func (m *Metrics) Record(dtMS uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(dtMS)
}

func (m *Metrics) record(dtMS uint32) {
	m.totalInferences++
	m.avgInferenceTimeMS = (m.avgInferenceTimeMS + dtMS) / 2
}

// RecordLabeled is the ground-truth path used by the evaluation harness.
// It counts the inference like Record and additionally tracks true and
// false positives against the label.
func (m *Metrics) RecordLabeled(result DetectionResult, groundTruth bool, dtMS uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(dtMS)

	if result.FireDetected {
		if groundTruth {
			m.truePositives++
		} else {
			m.falsePositives++
		}
	}

	m.accuracy = float32(m.truePositives) / float32(m.totalInferences)
}

// RecordDetection counts a fire frame and returns the running total.
func (m *Metrics) RecordDetection() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detections++
	return m.detections
}

// RecordOverrun counts a frame whose inference consumed the whole period.
func (m *Metrics) RecordOverrun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overruns++
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MetricsSnapshot{
		TotalInferences:    m.totalInferences,
		TruePositives:      m.truePositives,
		FalsePositives:     m.falsePositives,
		AvgInferenceTimeMS: m.avgInferenceTimeMS,
		Accuracy:           m.accuracy,
		Overruns:           m.overruns,
		Detections:         m.detections,
	}
}
