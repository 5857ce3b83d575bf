package ad983x

import (
	"errors"

	"tinygo.org/x/drivers"
)

var _ drivers.SPI = (*fakeSPI)(nil)

var errBus = errors.New("spi: nack")

// fakeSPI records every 16-bit word written. failAt makes the n-th Tx
// (1-based) return errBus; 0 disables failures.
type fakeSPI struct {
	words  []uint16
	calls  int
	failAt int
	// events interleaves chip-select changes with transfers when a pin shares it.
	events *[]string
}

func (f *fakeSPI) Tx(w, r []byte) error {
	f.calls++
	if f.events != nil {
		*f.events = append(*f.events, "tx")
	}
	if f.failAt != 0 && f.calls == f.failAt {
		return errBus
	}
	if len(w) != 2 || r != nil {
		return errors.New("fake: unexpected transfer shape")
	}
	f.words = append(f.words, uint16(w[0])<<8|uint16(w[1]))
	return nil
}

func (f *fakeSPI) Transfer(b byte) (byte, error) { return 0, errors.New("fake: transfer unused") }

func (f *fakeSPI) reset() { f.words = f.words[:0] }

type fakePin struct {
	events *[]string
}

func (p *fakePin) Set(high bool) {
	if high {
		*p.events = append(*p.events, "cs-high")
	} else {
		*p.events = append(*p.events, "cs-low")
	}
}

func equalWords(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
