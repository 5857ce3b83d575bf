// Package ad983x provides a TinyGo driver for the AD9833/AD9837 and
// AD9834/AD9838 programmable waveform generators (DDS).
//
// The chips are write-only: the driver keeps a shadow copy of the control
// register and only transmits a control word when a request changes it.
// Frequency and phase values go out as tagged 16-bit data words.
//
//	dds := ad983x.NewAD9833(machine.SPI0, machine.GP17)
//	dds.Reset()                       // required once after power-up
//	dds.SetFrequency(ad983x.F0, 4724) // 440 Hz with a 25 MHz MCLK
//	dds.Enable()
//
// SPI must run in mode 2 (CPOL=1, CPHA=0), MSB first. FSYNC is active low;
// pass the pin to the constructor, or nil if the bus frames each Tx itself.
//
// Calling any other method before Reset after power-up leaves the shadow
// register out of step with the silicon. This is not detected.
package ad983x

import (
	"errors"

	"tinygo.org/x/drivers"
)

// ErrInvalidArgument is returned, before any bus activity, for values wider
// than their register or for features the chip does not have.
var ErrInvalidArgument = errors.New("ad983x: invalid argument")

// Variant identifies the chip.
type Variant uint8

const (
	VariantUnknown Variant = iota
	VariantAD9833
	VariantAD9837
	VariantAD9834
	VariantAD9838
)

func (v Variant) String() string {
	switch v {
	case VariantAD9833:
		return "AD9833"
	case VariantAD9837:
		return "AD9837"
	case VariantAD9834:
		return "AD9834"
	case VariantAD9838:
		return "AD9838"
	default:
		return "unknown"
	}
}

// HasSignBitOutput reports whether the chip has the SIGN BIT OUT
// multiplexer and pin control (PIN_SW). AD9834/AD9838 only.
func (v Variant) HasSignBitOutput() bool {
	return v == VariantAD9834 || v == VariantAD9838
}

// FrequencyRegister selects FREQ0 or FREQ1.
type FrequencyRegister uint8

const (
	F0 FrequencyRegister = iota
	F1
)

// PhaseRegister selects PHASE0 or PHASE1.
type PhaseRegister uint8

const (
	P0 PhaseRegister = iota
	P1
)

// OutputWaveform selects what VOUT (AD9833/AD9837) or the DAC output shows.
type OutputWaveform uint8

const (
	Sinusoidal OutputWaveform = iota
	Triangle
	SquareMsbOfDac     // AD9833/AD9837 only
	SquareMsbOfDacDiv2 // AD9833/AD9837 only
)

// PoweredDown selects which parts of the chip are asleep.
type PoweredDown uint8

const (
	Nothing PoweredDown = iota
	Dac
	InternalClock
	DacAndInternalClock
)

// Config selects the chip and the optional chip-select pin.
type Config struct {
	Variant Variant
	// CS is driven low around each 16-bit write. Leave nil when the SPI
	// transport already handles FSYNC.
	CS OutputPin
}

// Device is the register protocol shared by every AD983x chip. Use the
// AD9833 or AD9834 wrappers, which add the family-specific operations.
type Device struct {
	spi     drivers.SPI
	cs      OutputPin
	variant Variant
	control Control

	// Fixed buffer to avoid per-write allocations.
	w [2]byte
}

func newDevice(spi drivers.SPI, cfg Config) Device {
	return Device{
		spi:     spi,
		cs:      cfg.CS,
		variant: cfg.Variant,
		control: RESET,
	}
}

// Destroy hands back the SPI bus and chip-select pin given at construction.
func (d *Device) Destroy() (drivers.SPI, OutputPin) {
	spi, cs := d.spi, d.cs
	d.spi, d.cs = nil, nil
	return spi, cs
}

// Variant returns the chip this driver was created for.
func (d *Device) Variant() Variant { return d.variant }

// Control returns the last control word successfully written.
func (d *Device) Control() Control { return d.control }

// Reset asserts RESET and always transmits the control word, so the chip
// matches the shadow register after power-up. The device is left disabled.
//
// On AD9834/AD9838 this is ignored by the chip while the hardware pin
// control source is selected.
func (d *Device) Reset() error {
	return d.writeControl(d.control.With(RESET))
}

// Disable asserts RESET, resetting the phase accumulators.
func (d *Device) Disable() error {
	return d.updateControl(d.control.With(RESET))
}

// Enable releases RESET.
func (d *Device) Enable() error {
	return d.updateControl(d.control.Without(RESET))
}

func fits(value uint32, bits uint) error {
	if value >= 1<<bits {
		return ErrInvalidArgument
	}
	return nil
}

func freqAddr(reg FrequencyRegister) uint16 {
	if reg == F1 {
		return freqAddrF1
	}
	return freqAddrF0
}

// SetFrequency writes a 28-bit tuning word, LSBs then MSBs. The control word
// is sent first only if 28-bit mode is not already active.
func (d *Device) SetFrequency(reg FrequencyRegister, value uint32) error {
	if err := fits(value, freqBits); err != nil {
		return err
	}
	if err := d.updateControl(d.control.With(B28)); err != nil {
		return err
	}
	addr := freqAddr(reg)
	if err := d.writeWord("frequency lsb", addr|uint16(value&halfWordMask)); err != nil {
		return err
	}
	return d.writeWord("frequency msb", addr|uint16(value>>halfWordBits))
}

// SetFrequencyMSB writes the upper 14 bits of a frequency register, leaving
// the lower half untouched. 28-bit mode is turned off if needed.
func (d *Device) SetFrequencyMSB(reg FrequencyRegister, value uint16) error {
	return d.setHalfWord(reg, value, HLB, 0, "frequency msb")
}

// SetFrequencyLSB writes the lower 14 bits of a frequency register, leaving
// the upper half untouched. 28-bit mode is turned off if needed.
func (d *Device) SetFrequencyLSB(reg FrequencyRegister, value uint16) error {
	return d.setHalfWord(reg, value, 0, HLB, "frequency lsb")
}

func (d *Device) setHalfWord(reg FrequencyRegister, value uint16, set, clear Control, op string) error {
	if err := fits(uint32(value), halfWordBits); err != nil {
		return err
	}
	if err := d.updateControl(d.control.update(set, clear|B28)); err != nil {
		return err
	}
	return d.writeWord(op, freqAddr(reg)|value)
}

// SelectFrequency chooses the frequency register feeding the accumulator.
//
// On AD9834/AD9838 the FSELECT pin overrides this while the hardware pin
// control source is selected.
func (d *Device) SelectFrequency(reg FrequencyRegister) error {
	if reg == F1 {
		return d.updateControl(d.control.With(FSELECT))
	}
	return d.updateControl(d.control.Without(FSELECT))
}

// SetPhase writes a 12-bit phase offset. It does not touch the control word.
func (d *Device) SetPhase(reg PhaseRegister, value uint16) error {
	if err := fits(uint32(value), phaseBits); err != nil {
		return err
	}
	word := uint16(phaseAddr) | value
	if reg == P1 {
		word |= phaseP1
	}
	return d.writeWord("phase", word)
}

// SelectPhase chooses the phase register added to the accumulator output.
//
// On AD9834/AD9838 the PSELECT pin overrides this while the hardware pin
// control source is selected.
func (d *Device) SelectPhase(reg PhaseRegister) error {
	if reg == P1 {
		return d.updateControl(d.control.With(PSELECT))
	}
	return d.updateControl(d.control.Without(PSELECT))
}

// SetPoweredDown puts the DAC and/or the internal clock to sleep.
//
// On AD9834/AD9838 the SLEEP pin overrides the DAC bit while the hardware
// pin control source is selected.
func (d *Device) SetPoweredDown(p PoweredDown) error {
	var set, clear Control
	switch p {
	case Nothing:
		clear = SLEEP1 | SLEEP12
	case Dac:
		set, clear = SLEEP12, SLEEP1
	case InternalClock:
		set, clear = SLEEP1, SLEEP12
	case DacAndInternalClock:
		set = SLEEP1 | SLEEP12
	default:
		return ErrInvalidArgument
	}
	return d.updateControl(d.control.update(set, clear))
}

// waveformBits maps the shape selections common to both families.
func waveformBits(w OutputWaveform) (set, clear Control, ok bool) {
	switch w {
	case Sinusoidal:
		return 0, OPBITEN | MODE, true
	case Triangle:
		return MODE, OPBITEN, true
	}
	return 0, 0, false
}
