package model

import (
	"math"
	"testing"
)

// TestMeanPredictorExtremes verifies the reference predictor on the
// canonical all-zero and all-one inputs.
func TestMeanPredictorExtremes(t *testing.T) {
	p := &MeanPredictor{}
	m := &Model{}

	conf, err := p.Infer(m)
	if err != nil {
		t.Fatal(err)
	}
	if conf != 0.0 {
		t.Errorf("all-zero input: expected confidence 0, got %v", conf)
	}

	for i := range m.Input {
		m.Input[i] = 1.0
	}
	conf, err = p.Infer(m)
	if err != nil {
		t.Fatal(err)
	}
	if conf != 1.0 {
		t.Errorf("all-one input: expected confidence 1, got %v", conf)
	}
	if m.Output[ClassFire] != 1.0 || m.Output[ClassNoFire] != 0.0 {
		t.Errorf("output distribution: got %v", m.Output)
	}
}

// TestMeanPredictorDistribution verifies the two outputs always sum to one.
func TestMeanPredictorDistribution(t *testing.T) {
	p := &MeanPredictor{}
	m := &Model{}
	for i := range m.Input {
		m.Input[i] = float32(i%256) / 255.0
	}

	conf, err := p.Infer(m)
	if err != nil {
		t.Fatal(err)
	}

	sum := float64(m.Output[ClassNoFire] + m.Output[ClassFire])
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("distribution sum: expected 1.0, got %v", sum)
	}
	if m.Output[ClassFire] != conf {
		t.Errorf("confidence must equal Output[ClassFire]: %v vs %v", conf, m.Output[ClassFire])
	}
}

// TestMeanPredictorDeterministic verifies identical inputs give identical
// confidences.
func TestMeanPredictorDeterministic(t *testing.T) {
	p := &MeanPredictor{}
	m := &Model{}
	for i := range m.Input {
		m.Input[i] = float32((i*37)%256) / 255.0
	}

	first, _ := p.Infer(m)
	second, _ := p.Infer(m)
	if first != second {
		t.Errorf("non-deterministic confidences: %v vs %v", first, second)
	}
}
