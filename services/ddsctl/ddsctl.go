// Package ddsctl is a line-oriented command console for an AD983x DDS.
//
// Each line is split shell-style and executed against the device:
//
//	reset
//	freq-hz f0 440
//	wave triangle
//	enable
//
// Every command produces exactly one reply line starting with an errcode.
package ddsctl

import (
	"bufio"
	"io"
	"strconv"
	"time"

	"ddscode-go/drivers/ad983x"
	"ddscode-go/errcode"
	"ddscode-go/x/conv"
	"ddscode-go/x/ramp"

	"github.com/google/shlex"
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// MCLK is the reference clock in Hz used by freq-hz. Default 25 MHz.
	MCLK uint64
	// Tick paces sweeps. Default time.Sleep.
	Tick ramp.Tick
}

// Reply is the outcome of one command.
type Reply struct {
	Code errcode.Code
	Msg  string
}

func (r Reply) String() string {
	if r.Msg == "" {
		return string(r.Code)
	}
	return string(r.Code) + " " + r.Msg
}

func fail(err error) Reply {
	r := Reply{Code: errcode.Of(err)}
	if e, ok := err.(*errcode.E); ok {
		r.Msg = e.Msg
	} else if r.Code != err {
		r.Msg = err.Error()
	}
	return r
}

// Console executes commands on one device. It is not safe for concurrent use.
type Console struct {
	dev  ad983x.Generator
	mclk uint64
	tick ramp.Tick
}

// New creates a console for dev.
func New(dev ad983x.Generator, cfg Config) *Console {
	if cfg.MCLK == 0 {
		cfg.MCLK = ad983x.DefaultMCLK
	}
	if cfg.Tick == nil {
		cfg.Tick = func(d time.Duration) bool {
			time.Sleep(d)
			return true
		}
	}
	return &Console{dev: dev, mclk: cfg.MCLK, tick: cfg.Tick}
}

// Run executes each line read from r and writes one reply line per command
// to w, until r is exhausted.
func (c *Console) Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		args, err := shlex.Split(sc.Text())
		if err != nil {
			if _, werr := io.WriteString(w, Reply{Code: errcode.InvalidParams, Msg: err.Error()}.String()+"\n"); werr != nil {
				return werr
			}
			continue
		}
		if len(args) == 0 {
			continue
		}
		if _, err := io.WriteString(w, c.ExecArgs(args).String()+"\n"); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Exec splits line shell-style and executes it. A blank line is a no-op.
func (c *Console) Exec(line string) Reply {
	args, err := shlex.Split(line)
	if err != nil {
		return Reply{Code: errcode.InvalidParams, Msg: err.Error()}
	}
	if len(args) == 0 {
		return Reply{Code: errcode.OK}
	}
	return c.ExecArgs(args)
}

// ExecArgs executes an already split command.
func (c *Console) ExecArgs(args []string) Reply {
	cmd, ok := commands[args[0]]
	if !ok {
		return Reply{Code: errcode.UnknownCommand, Msg: args[0]}
	}
	if len(args)-1 != cmd.nargs {
		return Reply{Code: errcode.InvalidParams, Msg: "usage: " + args[0] + " " + cmd.usage}
	}
	msg, err := cmd.run(c, args[1:])
	if err != nil {
		return fail(err)
	}
	return Reply{Code: errcode.OK, Msg: msg}
}

type command struct {
	nargs int
	usage string
	run   func(c *Console, a []string) (string, error)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"reset":   {0, "", func(c *Console, _ []string) (string, error) { return "", c.dev.Reset() }},
		"enable":  {0, "", func(c *Console, _ []string) (string, error) { return "", c.dev.Enable() }},
		"disable": {0, "", func(c *Console, _ []string) (string, error) { return "", c.dev.Disable() }},
		"status":  {0, "", (*Console).status},

		"freq":         {2, "<f0|f1> <word>", (*Console).freq},
		"freq-hz":      {2, "<f0|f1> <hz>", (*Console).freqHz},
		"freq-msb":     {2, "<f0|f1> <word>", (*Console).freqMSB},
		"freq-lsb":     {2, "<f0|f1> <word>", (*Console).freqLSB},
		"phase":        {2, "<p0|p1> <word>", (*Console).phase},
		"phase-deg":    {2, "<p0|p1> <millideg>", (*Console).phaseDeg},
		"select-freq":  {1, "<f0|f1>", (*Console).selectFreq},
		"select-phase": {1, "<p0|p1>", (*Console).selectPhase},
		"wave":         {1, "<sine|triangle|square|square-div2>", (*Console).wave},
		"sign":         {1, "<off|comparator|square|square-div2>", (*Console).sign},
		"source":       {1, "<sw|hw>", (*Console).source},
		"power":        {1, "<none|dac|clock|all>", (*Console).power},
		"sweep":        {5, "<f0|f1> <from> <to> <ms> <steps>", (*Console).sweep},
	}
}

func invalid(msg string) error {
	return &errcode.E{C: errcode.InvalidParams, Msg: msg}
}

func parseFreqReg(s string) (ad983x.FrequencyRegister, error) {
	switch s {
	case "f0":
		return ad983x.F0, nil
	case "f1":
		return ad983x.F1, nil
	}
	return 0, invalid("frequency register must be f0 or f1")
}

func parsePhaseReg(s string) (ad983x.PhaseRegister, error) {
	switch s {
	case "p0":
		return ad983x.P0, nil
	case "p1":
		return ad983x.P1, nil
	}
	return 0, invalid("phase register must be p0 or p1")
}

// parseUint accepts decimal or 0x-prefixed values up to bits wide. Range
// checks against register widths are left to the driver.
func parseUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, invalid("bad number " + strconv.Quote(s))
	}
	return v, nil
}

func hex16(v uint16) string {
	var b [4]byte
	return "0x" + string(conv.U16Hex(b[:], v))
}

func utoa(v uint64) string {
	var b [20]byte
	return string(conv.Utoa(b[:], v))
}

func (c *Console) status(_ []string) (string, error) {
	return "variant=" + c.dev.Variant().String() + " control=" + hex16(uint16(c.dev.Control())), nil
}

func (c *Console) freq(a []string) (string, error) {
	reg, err := parseFreqReg(a[0])
	if err != nil {
		return "", err
	}
	v, err := parseUint(a[1], 32)
	if err != nil {
		return "", err
	}
	return "", c.dev.SetFrequency(reg, uint32(v))
}

func (c *Console) freqHz(a []string) (string, error) {
	reg, err := parseFreqReg(a[0])
	if err != nil {
		return "", err
	}
	hz, err := parseUint(a[1], 64)
	if err != nil {
		return "", err
	}
	word, err := ad983x.FrequencyWord(hz, c.mclk)
	if err != nil {
		return "", err
	}
	if err := c.dev.SetFrequency(reg, word); err != nil {
		return "", err
	}
	return "word=" + utoa(uint64(word)), nil
}

func (c *Console) freqMSB(a []string) (string, error) {
	reg, err := parseFreqReg(a[0])
	if err != nil {
		return "", err
	}
	v, err := parseUint(a[1], 16)
	if err != nil {
		return "", err
	}
	return "", c.dev.SetFrequencyMSB(reg, uint16(v))
}

func (c *Console) freqLSB(a []string) (string, error) {
	reg, err := parseFreqReg(a[0])
	if err != nil {
		return "", err
	}
	v, err := parseUint(a[1], 16)
	if err != nil {
		return "", err
	}
	return "", c.dev.SetFrequencyLSB(reg, uint16(v))
}

func (c *Console) phase(a []string) (string, error) {
	reg, err := parsePhaseReg(a[0])
	if err != nil {
		return "", err
	}
	v, err := parseUint(a[1], 16)
	if err != nil {
		return "", err
	}
	return "", c.dev.SetPhase(reg, uint16(v))
}

func (c *Console) phaseDeg(a []string) (string, error) {
	reg, err := parsePhaseReg(a[0])
	if err != nil {
		return "", err
	}
	md, err := parseUint(a[1], 32)
	if err != nil {
		return "", err
	}
	word := ad983x.PhaseWord(uint32(md))
	if err := c.dev.SetPhase(reg, word); err != nil {
		return "", err
	}
	return "word=" + utoa(uint64(word)), nil
}

func (c *Console) selectFreq(a []string) (string, error) {
	reg, err := parseFreqReg(a[0])
	if err != nil {
		return "", err
	}
	return "", c.dev.SelectFrequency(reg)
}

func (c *Console) selectPhase(a []string) (string, error) {
	reg, err := parsePhaseReg(a[0])
	if err != nil {
		return "", err
	}
	return "", c.dev.SelectPhase(reg)
}
