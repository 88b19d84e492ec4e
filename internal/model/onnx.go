package model

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXPredictor runs the production kernel through onnxruntime. Tensors are
// allocated once at Init and reused for every frame.
type ONNXPredictor struct {
	modelPath    string
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

func NewONNXPredictor(modelPath string) *ONNXPredictor {
	return &ONNXPredictor{modelPath: modelPath}
}

func (p *ONNXPredictor) Init(m *Model) error {
	if p.session != nil {
		return nil
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("%w: onnx environment: %v", ErrInitFailed, err)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, InputLen))
	if err != nil {
		return fmt.Errorf("%w: input tensor: %v", ErrInitFailed, err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, OutputLen))
	if err != nil {
		inputTensor.Destroy()
		return fmt.Errorf("%w: output tensor: %v", ErrInitFailed, err)
	}

	session, err := ort.NewAdvancedSession(p.modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return fmt.Errorf("%w: onnx session: %v", ErrInitFailed, err)
	}

	p.inputTensor = inputTensor
	p.outputTensor = outputTensor
	p.session = session

	return nil
}

func (p *ONNXPredictor) Infer(m *Model) (float32, error) {
	copy(p.inputTensor.GetData(), m.Input[:])

	if err := p.session.Run(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInferFailed, err)
	}

	copy(m.Output[:], p.outputTensor.GetData())
	return m.Output[ClassFire], nil
}

func (p *ONNXPredictor) Close() error {
	if p.inputTensor != nil {
		p.inputTensor.Destroy()
	}
	if p.outputTensor != nil {
		p.outputTensor.Destroy()
	}
	if p.session != nil {
		p.session.Destroy()
	}
	ort.DestroyEnvironment()
	return nil
}
