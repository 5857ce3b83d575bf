package ramp

import (
	"testing"
	"time"
)

func noWait(time.Duration) bool { return true }

func TestStartLinearSnap(t *testing.T) {
	var got []uint16
	StartLinear[uint16](0, 500, 100, 0, 10, noWait, func(v uint16) { got = append(got, v) })
	if len(got) != 1 || got[0] != 100 {
		t.Fatalf("snap = %v", got)
	}
}

func TestStartLinearUp(t *testing.T) {
	var got []uint32
	StartLinear[uint32](1000, 2000, 1<<28-1, 100, 10, noWait, func(v uint32) { got = append(got, v) })
	if len(got) != 10 {
		t.Fatalf("steps = %d (%v)", len(got), got)
	}
	if got[len(got)-1] != 2000 {
		t.Fatalf("last = %d", got[len(got)-1])
	}
	prev := uint32(1000)
	for _, v := range got {
		if v <= prev {
			t.Fatalf("not increasing: %v", got)
		}
		prev = v
	}
}

func TestStartLinearDown(t *testing.T) {
	var got []uint32
	StartLinear[uint32](1<<27, 0, 1<<28-1, 40, 4, noWait, func(v uint32) { got = append(got, v) })
	want := []uint32{3 << 25, 1 << 26, 1 << 25, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestStartLinearCancel(t *testing.T) {
	var waits []time.Duration
	var got []uint16
	n := 0
	tick := func(d time.Duration) bool {
		waits = append(waits, d)
		n++
		return n < 3
	}
	StartLinear[uint16](0, 100, 100, 50, 5, tick, func(v uint16) { got = append(got, v) })
	if len(got) != 2 {
		t.Fatalf("set called %d times after cancel: %v", len(got), got)
	}
	if waits[0] != 10*time.Millisecond {
		t.Fatalf("step duration = %v", waits[0])
	}
}
