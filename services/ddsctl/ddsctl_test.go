package ddsctl

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"ddscode-go/drivers/ad983x"
	"ddscode-go/errcode"

	"tinygo.org/x/drivers"
)

var _ drivers.SPI = (*fakeSPI)(nil)

type fakeSPI struct {
	words []uint16
	fail  error
}

func (f *fakeSPI) Tx(w, r []byte) error {
	if f.fail != nil {
		return f.fail
	}
	f.words = append(f.words, uint16(w[0])<<8|uint16(w[1]))
	return nil
}

func (f *fakeSPI) Transfer(b byte) (byte, error) { return 0, nil }

func noWait(time.Duration) bool { return true }

func newConsole(family string) (*Console, *fakeSPI) {
	spi := &fakeSPI{}
	var dev ad983x.Generator
	if family == "B" {
		dev = ad983x.NewAD9834(spi, nil)
	} else {
		dev = ad983x.NewAD9833(spi, nil)
	}
	return New(dev, Config{Tick: noWait}), spi
}

func TestExecReplies(t *testing.T) {
	cases := []struct {
		family string
		line   string
		want   string
	}{
		{"A", "", "ok"},
		{"A", "# comment", "ok"},
		{"A", "reset", "ok"},
		{"A", "status", "ok variant=AD9833 control=0x0100"},
		{"A", "freq-hz f0 440", "ok word=4724"},
		{"A", "freq f1 0x10000000", "invalid_params ad983x: invalid argument"},
		{"A", "freq f2 1", "invalid_params frequency register must be f0 or f1"},
		{"A", "freq f0", "invalid_params usage: freq <f0|f1> <word>"},
		{"A", "freq f0 nope", `invalid_params bad number "nope"`},
		{"A", "phase p1 4095", "ok"},
		{"A", "phase-deg p0 90000", "ok word=1024"},
		{"A", "wave square", "ok"},
		{"B", "wave square", "invalid_params ad983x: invalid argument"},
		{"A", "wave sawtooth", "invalid_params unknown waveform sawtooth"},
		{"A", "sign comparator", "unsupported AD9833 has no sign bit output"},
		{"B", "sign comparator", "ok"},
		{"A", "source hw", "unsupported AD9833 has no pin control"},
		{"B", "source hw", "ok"},
		{"B", "source pins", "invalid_params control source must be sw or hw"},
		{"A", "power all", "ok"},
		{"A", "jump", "unknown_command jump"},
	}
	for _, tc := range cases {
		c, _ := newConsole(tc.family)
		if got := c.Exec(tc.line).String(); got != tc.want {
			t.Errorf("%s %q: got %q, want %q", tc.family, tc.line, got, tc.want)
		}
	}
}

func TestExecUnterminatedQuote(t *testing.T) {
	c, spi := newConsole("A")
	if r := c.Exec(`freq "f0 1`); r.Code != errcode.InvalidParams {
		t.Fatalf("reply = %v", r)
	}
	if len(spi.words) != 0 {
		t.Fatalf("unparsed line wrote %#04x", spi.words)
	}
}

func TestExecWrites(t *testing.T) {
	c, spi := newConsole("A")
	for _, line := range []string{"reset", "freq f0 4724", "enable", "enable", "select-freq f1", "select-phase p1"} {
		if r := c.Exec(line); r.Code != errcode.OK {
			t.Fatalf("%q: %v", line, r)
		}
	}
	want := []uint16{0x0100, 0x2100, 0x5274, 0x4000, 0x2000, 0x2800, 0x2C00}
	if len(spi.words) != len(want) {
		t.Fatalf("words = %#04x, want %#04x", spi.words, want)
	}
	for i := range want {
		if spi.words[i] != want[i] {
			t.Fatalf("words = %#04x, want %#04x", spi.words, want)
		}
	}
}

func TestExecBusFailure(t *testing.T) {
	c, spi := newConsole("A")
	spi.fail = errors.New("spi: nack")
	r := c.Exec("enable")
	if r.Code != errcode.BusFailure {
		t.Fatalf("reply = %v", r)
	}
	if r.Msg != "ad983x: control 0x0: spi: nack" {
		t.Fatalf("msg = %q", r.Msg)
	}
}

func TestSweepSendsChangedHalvesOnly(t *testing.T) {
	c, spi := newConsole("A")
	// 0x3FFE -> 0x4002 in 4 steps crosses the half-word boundary once.
	r := c.Exec("sweep f0 0x3FFE 0x4002 4 4")
	if r.String() != "ok steps=4" {
		t.Fatalf("reply = %v", r)
	}
	want := []uint16{
		0x2100,          // B28
		0x4000 | 0x3FFE, // full word, LSBs
		0x4000,          // MSBs
		0x0100,          // half-word mode, LSB target
		0x4000 | 0x3FFF, // step 0x3FFF
		0x4000,          // step 0x4000: LSBs
		0x1100,          // HLB
		0x4001,          // MSBs = 1
		0x0100,          // back to LSBs
		0x4001,          // step 0x4001
		0x4002,          // step 0x4002
	}
	if len(spi.words) != len(want) {
		t.Fatalf("words = %#04x\nwant    %#04x", spi.words, want)
	}
	for i := range want {
		if spi.words[i] != want[i] {
			t.Fatalf("words = %#04x\nwant    %#04x", spi.words, want)
		}
	}
}

func TestSweepCancelled(t *testing.T) {
	spi := &fakeSPI{}
	n := 0
	c := New(ad983x.NewAD9833(spi, nil), Config{Tick: func(time.Duration) bool {
		n++
		return n < 2
	}})
	r := c.Exec("sweep f1 100 200 10 10")
	if r.Code != errcode.Cancelled || r.Msg != "stopped at 110" {
		t.Fatalf("reply = %v", r)
	}
}

func TestSweepRejectsWideWords(t *testing.T) {
	c, spi := newConsole("A")
	if r := c.Exec("sweep f0 0 0x10000000 10 1"); r.Code != errcode.InvalidParams {
		t.Fatalf("reply = %v", r)
	}
	if len(spi.words) != 0 {
		t.Fatalf("rejected sweep wrote %#04x", spi.words)
	}
}

func TestRun(t *testing.T) {
	c, _ := newConsole("B")
	in := strings.NewReader("reset\n\nsource hw\nbogus\nstatus\n")
	var out bytes.Buffer
	if err := c.Run(in, &out); err != nil {
		t.Fatal(err)
	}
	want := "ok\nok\nunknown_command bogus\nok variant=AD9834 control=0x0300\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}
