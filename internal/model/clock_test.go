package model

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	clock := NewClock(100 * time.Millisecond)
	if clock.TimeLeft() != 100*time.Millisecond {
		t.Errorf("time left = %v", clock.TimeLeft())
	}
	if clock.Expired() {
		t.Error("fresh clock expired")
	}

	clock.Start()
	time.Sleep(20 * time.Millisecond)
	clock.Stop()

	left := clock.TimeLeft()
	if left >= 100*time.Millisecond {
		t.Errorf("clock did not tick: %v", left)
	}

	// A stopped clock holds its value.
	time.Sleep(20 * time.Millisecond)
	if clock.TimeLeft() != left {
		t.Errorf("stopped clock moved from %v to %v", left, clock.TimeLeft())
	}
}

func TestClockExpires(t *testing.T) {
	clock := NewClock(5 * time.Millisecond)
	clock.Start()
	time.Sleep(10 * time.Millisecond)
	if !clock.Expired() {
		t.Errorf("clock with %v left not expired", clock.TimeLeft())
	}
}

func TestClockStartIsIdempotent(t *testing.T) {
	clock := NewClock(time.Second)
	clock.Start()
	first := clock.TimeLeft()
	clock.Start()
	if clock.TimeLeft() > first {
		t.Error("second Start rewound the clock")
	}
}
