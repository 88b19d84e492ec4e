// Package hwclock provides the millisecond tick used to time inferences and
// pace the pipeline loop. NowMS wraps modulo 2^32; durations must be taken
// with unsigned subtraction so the wrap is transparent over windows shorter
// than the wrap period.
package hwclock

import "time"

type Clock interface {
	// NowMS returns a monotonically non-decreasing millisecond counter,
	// wrapping modulo 2^32.
	NowMS() uint32

	// DelayMS blocks for at least ms milliseconds.
	DelayMS(ms uint32)
}

// Elapsed computes the millisecond span from start to end across a possible
// counter wrap.
func Elapsed(start, end uint32) uint32 {
	return end - start
}

// System is the wall-clock implementation.
type System struct {
	epoch time.Time
}

func NewSystem() *System {
	return &System{epoch: time.Now()}
}

func (c *System) NowMS() uint32 {
	return uint32(time.Since(c.epoch).Milliseconds())
}

func (c *System) DelayMS(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
