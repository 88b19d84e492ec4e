package model

// MeanPredictor is the reference bring-up predictor: confidence is the mean
// of the normalized input vector. Deterministic across identical inputs.
type MeanPredictor struct{}

func (p *MeanPredictor) Init(m *Model) error {
	return nil
}

func (p *MeanPredictor) Infer(m *Model) (float32, error) {
	var sum float32
	for _, v := range m.Input {
		sum += v
	}
	confidence := sum / InputLen

	m.Output[ClassNoFire] = 1.0 - confidence
	m.Output[ClassFire] = confidence

	return confidence, nil
}
