package ad983x

// Control register and data-word bit assignments (AD9833/AD9834 datasheets,
// AN-1070). Bits are numbered as transmitted, D15 first.
const (
	bitD15 = 1 << 15
	bitD14 = 1 << 14
	bitD13 = 1 << 13

	// Control register.
	B28       Control = 1 << 13 // 28-bit frequency writes (two consecutive words)
	HLB       Control = 1 << 12 // half-word target when B28 is clear: 1 = MSBs, 0 = LSBs
	FSELECT   Control = 1 << 11 // active frequency register
	PSELECT   Control = 1 << 10 // active phase register
	PIN_SW    Control = 1 << 9  // AD9834/AD9838: 1 = FSELECT/PSELECT/RESET/SLEEP pins
	RESET     Control = 1 << 8
	SLEEP1    Control = 1 << 7 // internal MCLK disabled
	SLEEP12   Control = 1 << 6 // DAC powered down
	OPBITEN   Control = 1 << 5 // digital output enable
	SIGN_PIB  Control = 1 << 4 // AD9834/AD9838: SIGN BIT OUT source, 1 = comparator
	DIV2      Control = 1 << 3 // 1 = DAC MSB, 0 = DAC MSB/2
	MODE      Control = 1 << 1 // 1 = triangle

	// Only D13..D0 of a control word reach the chip; D15/D14 = 00 addresses
	// the control register.
	controlPayloadMask = 0x3FFF

	// Data words.
	freqAddrF0 = bitD14
	freqAddrF1 = bitD15
	phaseAddr  = bitD15 | bitD14
	phaseP1    = bitD13

	freqBits     = 28
	halfWordBits = 14
	phaseBits    = 12

	halfWordMask = 1<<halfWordBits - 1
)
