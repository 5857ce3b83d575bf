package ddsctl

import (
	"time"

	"ddscode-go/drivers/ad983x"
	"ddscode-go/errcode"
	"ddscode-go/x/ramp"
)

// Family B operations, present on *ad983x.AD9834 only.
type signBitOutputter interface {
	SetSignBitOutput(s ad983x.SignBitOutput) error
}

type controlSourcer interface {
	SetControlSource(s ad983x.ControlSource) error
}

var (
	waveforms = map[string]ad983x.OutputWaveform{
		"sine":        ad983x.Sinusoidal,
		"triangle":    ad983x.Triangle,
		"square":      ad983x.SquareMsbOfDac,
		"square-div2": ad983x.SquareMsbOfDacDiv2,
	}
	signBitOutputs = map[string]ad983x.SignBitOutput{
		"off":         ad983x.SignBitDisabled,
		"comparator":  ad983x.SignBitComparator,
		"square":      ad983x.SignBitSquareMsbOfDac,
		"square-div2": ad983x.SignBitSquareMsbOfDacDiv2,
	}
	controlSources = map[string]ad983x.ControlSource{
		"sw": ad983x.Software,
		"hw": ad983x.HardwarePins,
	}
	powerModes = map[string]ad983x.PoweredDown{
		"none":  ad983x.Nothing,
		"dac":   ad983x.Dac,
		"clock": ad983x.InternalClock,
		"all":   ad983x.DacAndInternalClock,
	}
)

func (c *Console) wave(a []string) (string, error) {
	w, ok := waveforms[a[0]]
	if !ok {
		return "", invalid("unknown waveform " + a[0])
	}
	return "", c.dev.SetOutputWaveform(w)
}

func (c *Console) sign(a []string) (string, error) {
	dev, ok := c.dev.(signBitOutputter)
	if !ok {
		return "", &errcode.E{C: errcode.Unsupported, Msg: c.dev.Variant().String() + " has no sign bit output"}
	}
	s, ok := signBitOutputs[a[0]]
	if !ok {
		return "", invalid("unknown sign bit output " + a[0])
	}
	return "", dev.SetSignBitOutput(s)
}

func (c *Console) source(a []string) (string, error) {
	dev, ok := c.dev.(controlSourcer)
	if !ok {
		return "", &errcode.E{C: errcode.Unsupported, Msg: c.dev.Variant().String() + " has no pin control"}
	}
	s, ok := controlSources[a[0]]
	if !ok {
		return "", invalid("control source must be sw or hw")
	}
	return "", dev.SetControlSource(s)
}

func (c *Console) power(a []string) (string, error) {
	p, ok := powerModes[a[0]]
	if !ok {
		return "", invalid("unknown power mode " + a[0])
	}
	return "", c.dev.SetPoweredDown(p)
}

const maxFrequencyWord = 1<<28 - 1

// sweep programs 'from' as a full 28-bit word, then steps towards 'to'
// re-sending only the half-words that change. The chip applies each half as
// soon as it lands, so a step that carries across D14 shows one
// intermediate value for a single write.
func (c *Console) sweep(a []string) (string, error) {
	reg, err := parseFreqReg(a[0])
	if err != nil {
		return "", err
	}
	var v [4]uint64
	for i, bits := range []int{32, 32, 32, 16} {
		if v[i], err = parseUint(a[i+1], bits); err != nil {
			return "", err
		}
	}
	from, to, ms, steps := uint32(v[0]), uint32(v[1]), uint32(v[2]), uint16(v[3])
	if from > maxFrequencyWord || to > maxFrequencyWord {
		return "", ad983x.ErrInvalidArgument
	}

	if err := c.dev.SetFrequency(reg, from); err != nil {
		return "", err
	}
	cur := from
	var stepErr error
	n := 0
	tick := func(d time.Duration) bool {
		return stepErr == nil && c.tick(d)
	}
	ramp.StartLinear(from, to, maxFrequencyWord, ms, steps, tick, func(next uint32) {
		if stepErr != nil {
			return
		}
		if lo := next & 0x3FFF; lo != cur&0x3FFF {
			if stepErr = c.dev.SetFrequencyLSB(reg, uint16(lo)); stepErr != nil {
				return
			}
		}
		if hi := next >> 14; hi != cur>>14 {
			if stepErr = c.dev.SetFrequencyMSB(reg, uint16(hi)); stepErr != nil {
				return
			}
		}
		cur = next
		n++
	})
	if stepErr != nil {
		return "", stepErr
	}
	if cur != to {
		return "", &errcode.E{C: errcode.Cancelled, Msg: "stopped at " + utoa(uint64(cur))}
	}
	return "steps=" + utoa(uint64(n)), nil
}
