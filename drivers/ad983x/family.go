package ad983x

import "tinygo.org/x/drivers"

// AD9833 drives an AD9833 or AD9837. These chips can route the DAC MSB
// straight to VOUT as a square wave.
type AD9833 struct {
	Device
}

// NewAD9833 creates a driver for an AD9833. It does not touch the device;
// call Reset before anything else.
func NewAD9833(spi drivers.SPI, cs OutputPin) *AD9833 {
	return &AD9833{Device: newDevice(spi, Config{Variant: VariantAD9833, CS: cs})}
}

// NewAD9837 creates a driver for an AD9837, which behaves as an AD9833.
func NewAD9837(spi drivers.SPI, cs OutputPin) *AD9833 {
	return &AD9833{Device: newDevice(spi, Config{Variant: VariantAD9837, CS: cs})}
}

// SetOutputWaveform selects the VOUT waveform.
func (d *AD9833) SetOutputWaveform(w OutputWaveform) error {
	if set, clear, ok := waveformBits(w); ok {
		return d.updateControl(d.control.update(set, clear))
	}
	switch w {
	case SquareMsbOfDac:
		return d.updateControl(d.control.update(OPBITEN|DIV2, MODE))
	case SquareMsbOfDacDiv2:
		return d.updateControl(d.control.update(OPBITEN, MODE|DIV2))
	}
	return ErrInvalidArgument
}

// AD9834 drives an AD9834 or AD9838. These chips have a separate SIGN BIT
// OUT pin and can hand register selection, reset and sleep to hardware pins.
type AD9834 struct {
	Device
}

// NewAD9834 creates a driver for an AD9834. It does not touch the device;
// call Reset before anything else.
func NewAD9834(spi drivers.SPI, cs OutputPin) *AD9834 {
	return &AD9834{Device: newDevice(spi, Config{Variant: VariantAD9834, CS: cs})}
}

// NewAD9838 creates a driver for an AD9838, which behaves as an AD9834.
func NewAD9838(spi drivers.SPI, cs OutputPin) *AD9834 {
	return &AD9834{Device: newDevice(spi, Config{Variant: VariantAD9838, CS: cs})}
}

// SetOutputWaveform selects the IOUT waveform. The square wave selections
// return ErrInvalidArgument; use SetSignBitOutput instead.
func (d *AD9834) SetOutputWaveform(w OutputWaveform) error {
	set, clear, ok := waveformBits(w)
	if !ok {
		return ErrInvalidArgument
	}
	return d.updateControl(d.control.update(set, clear))
}

// SignBitOutput selects what drives the SIGN BIT OUT pin.
type SignBitOutput uint8

const (
	SignBitDisabled SignBitOutput = iota
	SignBitComparator
	SignBitSquareMsbOfDac
	SignBitSquareMsbOfDacDiv2
)

// SetSignBitOutput configures the SIGN BIT OUT pin.
func (d *AD9834) SetSignBitOutput(s SignBitOutput) error {
	var set, clear Control
	switch s {
	case SignBitDisabled:
		clear = OPBITEN
	case SignBitComparator:
		set, clear = OPBITEN|SIGN_PIB|DIV2, MODE
	case SignBitSquareMsbOfDac:
		set, clear = OPBITEN|DIV2, MODE|SIGN_PIB
	case SignBitSquareMsbOfDacDiv2:
		set, clear = OPBITEN, MODE|SIGN_PIB|DIV2
	default:
		return ErrInvalidArgument
	}
	return d.updateControl(d.control.update(set, clear))
}

// ControlSource selects who drives frequency/phase selection, reset and
// DAC sleep.
type ControlSource uint8

const (
	Software ControlSource = iota
	HardwarePins
)

// SetControlSource switches between the control bits and the FSELECT,
// PSELECT, RESET and SLEEP pins. No other bit changes, so settings made
// while pins are in control take effect on returning to Software.
func (d *AD9834) SetControlSource(s ControlSource) error {
	switch s {
	case Software:
		return d.updateControl(d.control.Without(PIN_SW))
	case HardwarePins:
		return d.updateControl(d.control.With(PIN_SW))
	}
	return ErrInvalidArgument
}

// New creates a driver from cfg. The result is *AD9833 or *AD9834 depending
// on the variant; callers needing family operations should type-switch.
func New(spi drivers.SPI, cfg Config) (Generator, error) {
	switch cfg.Variant {
	case VariantAD9833, VariantAD9837:
		return &AD9833{Device: newDevice(spi, cfg)}, nil
	case VariantAD9834, VariantAD9838:
		return &AD9834{Device: newDevice(spi, cfg)}, nil
	}
	return nil, ErrInvalidArgument
}

// Generator is the operation set common to every AD983x.
type Generator interface {
	Variant() Variant
	Control() Control
	Reset() error
	Enable() error
	Disable() error
	SetFrequency(reg FrequencyRegister, value uint32) error
	SetFrequencyMSB(reg FrequencyRegister, value uint16) error
	SetFrequencyLSB(reg FrequencyRegister, value uint16) error
	SelectFrequency(reg FrequencyRegister) error
	SetPhase(reg PhaseRegister, value uint16) error
	SelectPhase(reg PhaseRegister) error
	SetPoweredDown(p PoweredDown) error
	SetOutputWaveform(w OutputWaveform) error
	Destroy() (drivers.SPI, OutputPin)
}

var (
	_ Generator = (*AD9833)(nil)
	_ Generator = (*AD9834)(nil)
)
