package ad983x

import "ddscode-go/x/mathx"

// DefaultMCLK is the reference clock most AD983x boards ship with.
const DefaultMCLK = 25_000_000

// FrequencyWord converts an output frequency to a 28-bit tuning word,
// rounding to nearest: fOUT = FREQREG * fMCLK / 2^28.
func FrequencyWord(hz, mclkHz uint64) (uint32, error) {
	if mclkHz == 0 || hz >= mclkHz {
		return 0, ErrInvalidArgument
	}
	word := mathx.ScaleRound(hz, 1<<freqBits, mclkHz)
	if word >= 1<<freqBits {
		return 0, ErrInvalidArgument
	}
	return uint32(word), nil
}

// FrequencyHz is the inverse of FrequencyWord, rounded to the nearest Hz.
func FrequencyHz(word uint32, mclkHz uint64) uint64 {
	return mathx.ScaleRound(uint64(word), mclkHz, 1<<freqBits)
}

// PhaseWord converts millidegrees to a 12-bit phase code (4096 = 360°).
func PhaseWord(milliDeg uint32) uint16 {
	code := mathx.ScaleRound(uint64(milliDeg), 1<<phaseBits, 360_000)
	return uint16(code & (1<<phaseBits - 1))
}
