package ramp

import (
	"time"

	"ddscode-go/x/mathx"
)

// Word is a register-sized unsigned value being stepped.
type Word interface {
	~uint16 | ~uint32
}

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// StartLinear runs a synchronous (caller-driven) integer ramp from cur to to,
// calling set once per step that changes the value. Values are clamped to
// [0..top]. steps==0 or durationMs==0 snaps to 'to'. The final call to set
// always carries 'to' (clamped) unless tick cancelled the ramp.
func StartLinear[T Word](cur, to, top T, durationMs uint32, steps uint16, tick Tick, set func(T)) {
	if steps == 0 || durationMs == 0 {
		set(mathx.Min(to, top))
		return
	}
	d := int64(to) - int64(cur)
	st := int64(steps)
	acc := int64(0)
	cur64 := int64(cur)
	stepDur := time.Duration(mathx.Clamp(durationMs/uint32(steps), 1, durationMs)) * time.Millisecond

	for i := uint16(1); i < steps; i++ {
		if !tick(stepDur) {
			return
		}
		acc += d
		inc := acc / st
		if inc != 0 {
			acc -= inc * st
			cur64 = mathx.Clamp(cur64+inc, 0, int64(top))
			set(T(cur64))
		}
	}
	if !tick(stepDur) {
		return
	}
	set(mathx.Min(to, top))
}
