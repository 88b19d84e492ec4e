// Package bus is the in-process detection event stream. Publish never
// blocks: a subscriber that falls behind loses events rather than stalling
// the pipeline loop.
package bus

import (
	"errors"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

var ErrClosed = errors.New("bus closed")

// Event is the per-frame record published by the pipeline loop.
type Event struct {
	Session      string  `msgpack:"session" json:"session"`
	Frame        uint32  `msgpack:"frame" json:"frame"`
	Confidence   float32 `msgpack:"confidence" json:"confidence"`
	FireDetected bool    `msgpack:"fire_detected" json:"fire_detected"`
	AlertLevel   int     `msgpack:"alert_level" json:"alert_level"`
	InferenceMS  uint32  `msgpack:"inference_ms" json:"inference_ms"`
}

type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan []byte
	nextID int
	closed bool
	drops  uint64
}

func New() *Bus {
	return &Bus{subs: make(map[int]chan []byte)}
}

// Publish fans the event out to all subscribers. Full subscriber buffers
// drop the event and count it; the caller is never blocked.
func (b *Bus) Publish(ev *Event) error {
	payload, err := msgpack.Marshal(ev)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	for _, ch := range b.subs {
		select {
		case ch <- payload:
		default:
			b.drops++
		}
	}

	return nil
}

// Subscribe returns a channel of encoded events plus a cancel func. The
// channel is closed on cancel or bus Close.
func (b *Bus) Subscribe(buffer int) (<-chan []byte, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan []byte, buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Drops reports events lost to slow subscribers.
func (b *Bus) Drops() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drops
}

func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}

	return nil
}

// Decode unpacks a payload received from Subscribe.
func Decode(payload []byte) (*Event, error) {
	var ev Event
	if err := msgpack.Unmarshal(payload, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
