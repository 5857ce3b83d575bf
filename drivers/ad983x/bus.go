package ad983x

import "strconv"

// OutputPin drives a chip-select (FSYNC) line. machine.Pin satisfies it.
type OutputPin interface {
	Set(high bool)
}

// BusError reports a failed SPI write. Err is the transport's error as returned.
type BusError struct {
	Op   string
	Word uint16
	Err  error
}

func (e *BusError) Error() string {
	return "ad983x: " + e.Op + " 0x" + strconv.FormatUint(uint64(e.Word), 16) + ": " + e.Err.Error()
}

func (e *BusError) Unwrap() error { return e.Err }

// writeWord sends one 16-bit word, high byte first. With a chip-select pin
// FSYNC is pulled low for exactly this word.
func (d *Device) writeWord(op string, word uint16) error {
	d.w[0] = byte(word >> 8)
	d.w[1] = byte(word)

	if d.cs != nil {
		d.cs.Set(false)
	}
	err := d.spi.Tx(d.w[:], nil)
	if d.cs != nil {
		d.cs.Set(true)
	}
	if err != nil {
		return &BusError{Op: op, Word: word, Err: err}
	}
	return nil
}

// writeControl transmits c and records it as the device state on success.
func (d *Device) writeControl(c Control) error {
	if err := d.writeWord("control", c.Payload()); err != nil {
		return err
	}
	d.control = c
	return nil
}

// updateControl writes c only when it differs from the cached word.
func (d *Device) updateControl(c Control) error {
	if c == d.control {
		return nil
	}
	return d.writeControl(c)
}
