package ad983x

// Control is a shadow copy of the 16-bit control register. Values are
// immutable; With and Without return the updated word.
type Control uint16

// With returns c with every bit in mask set.
func (c Control) With(mask Control) Control { return c | mask }

// Without returns c with every bit in mask cleared.
func (c Control) Without(mask Control) Control { return c &^ mask }

// Has reports whether any bit in mask is set.
func (c Control) Has(mask Control) bool { return c&mask != 0 }

// Payload is the word put on the wire: D15/D14 are always zero.
func (c Control) Payload() uint16 { return uint16(c) & controlPayloadMask }

// update applies set then clear. The two masks are expected to be disjoint.
func (c Control) update(set, clear Control) Control {
	return c.With(set).Without(clear)
}
