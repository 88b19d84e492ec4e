package hwclock

import (
	"math"
	"testing"
	"time"
)

// TestElapsedAcrossWrap verifies unsigned subtraction makes the 2^32 wrap
// transparent.
func TestElapsedAcrossWrap(t *testing.T) {
	start := uint32(math.MaxUint32 - 10)
	end := uint32(5)

	if got := Elapsed(start, end); got != 16 {
		t.Errorf("wrap span: expected 16, got %d", got)
	}
	if got := Elapsed(100, 250); got != 150 {
		t.Errorf("plain span: expected 150, got %d", got)
	}
}

// TestSystemClockMonotone verifies NowMS does not go backwards over a short
// window.
func TestSystemClockMonotone(t *testing.T) {
	c := NewSystem()

	a := c.NowMS()
	time.Sleep(5 * time.Millisecond)
	b := c.NowMS()

	if Elapsed(a, b) < 5 {
		t.Errorf("expected at least 5ms elapsed, got %d", Elapsed(a, b))
	}
}

// TestSystemDelayBlocks verifies DelayMS blocks for at least the requested
// duration.
func TestSystemDelayBlocks(t *testing.T) {
	c := NewSystem()

	start := time.Now()
	c.DelayMS(10)
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("delay returned after %v", elapsed)
	}
}

// TestFakeClock verifies delays advance the counter and are recorded.
func TestFakeClock(t *testing.T) {
	c := NewFake(100)

	c.DelayMS(50)
	c.Advance(7)

	if c.NowMS() != 157 {
		t.Errorf("expected 157, got %d", c.NowMS())
	}
	if len(c.Delays) != 1 || c.Delays[0] != 50 {
		t.Errorf("expected recorded delay [50], got %v", c.Delays)
	}
}
