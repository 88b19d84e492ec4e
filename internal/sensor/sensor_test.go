package sensor

import (
	"errors"
	"testing"
)

// TestSyntheticRamp verifies frame n is filled with n mod 256.
func TestSyntheticRamp(t *testing.T) {
	s := NewSynthetic()
	buf := make([]byte, 1024)

	for frame := 0; frame < 300; frame++ {
		n, err := s.Capture(buf)
		if err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if n != len(buf) {
			t.Fatalf("frame %d: expected %d bytes, got %d", frame, len(buf), n)
		}

		want := byte(frame % 256)
		if buf[0] != want || buf[len(buf)-1] != want {
			t.Fatalf("frame %d: expected fill %d, got %d/%d", frame, want, buf[0], buf[len(buf)-1])
		}
	}
}

// TestReplaySequence verifies scripted frames play in order and exhaustion
// is reported.
func TestReplaySequence(t *testing.T) {
	s := NewReplay([]byte{1, 2, 3}, []byte{4})
	buf := make([]byte, 1024)

	n, err := s.Capture(buf)
	if err != nil || n != 3 {
		t.Fatalf("first frame: n=%d err=%v", n, err)
	}
	if buf[0] != 1 || buf[2] != 3 {
		t.Errorf("first frame content: %v", buf[:3])
	}

	n, err = s.Capture(buf)
	if err != nil || n != 1 {
		t.Fatalf("second frame: n=%d err=%v", n, err)
	}

	if _, err = s.Capture(buf); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

// TestReplayHonorsBufferCapacity verifies frames longer than the buffer are
// truncated at the buffer length.
func TestReplayHonorsBufferCapacity(t *testing.T) {
	long := make([]byte, 2048)
	s := NewReplay(long)

	buf := make([]byte, 1024)
	n, err := s.Capture(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1024 {
		t.Errorf("expected capture capped at 1024, got %d", n)
	}
}
