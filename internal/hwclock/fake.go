package hwclock

// Fake is a deterministic clock for tests. DelayMS advances the counter
// instead of sleeping; Advance simulates time spent inside an inference.
type Fake struct {
	now    uint32
	Delays []uint32
}

func NewFake(start uint32) *Fake {
	return &Fake{now: start}
}

func (c *Fake) NowMS() uint32 {
	return c.now
}

func (c *Fake) DelayMS(ms uint32) {
	c.now += ms
	c.Delays = append(c.Delays, ms)
}

func (c *Fake) Advance(ms uint32) {
	c.now += ms
}
