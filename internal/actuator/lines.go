package actuator

import (
	"os"
	"sync"
)

// MemoryLine records level transitions in memory. Used in tests and on
// hosts without a physical line.
type MemoryLine struct {
	mu          sync.Mutex
	level       bool
	Transitions []bool
}

func NewMemoryLine() *MemoryLine {
	return &MemoryLine{}
}

func (l *MemoryLine) Set(high bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = high
	l.Transitions = append(l.Transitions, high)
	return nil
}

func (l *MemoryLine) Level() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// GPIOLine writes "0"/"1" to a sysfs-style value file.
type GPIOLine struct {
	valuePath string
}

func NewGPIOLine(valuePath string) *GPIOLine {
	return &GPIOLine{valuePath: valuePath}
}

func (l *GPIOLine) Set(high bool) error {
	v := []byte("0")
	if high {
		v = []byte("1")
	}
	return os.WriteFile(l.valuePath, v, 0o644)
}

// FailingLine always errors; used to exercise the hardware-fault path.
type FailingLine struct {
	Err error
}

func (l *FailingLine) Set(bool) error {
	return l.Err
}
