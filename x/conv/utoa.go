package conv

// Utoa writes the base-10 representation of n at the end of buf and returns
// the used slice. buf must hold 20 bytes for any uint64; a shorter buffer
// that cannot fit n yields an empty slice.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	for {
		if i == 0 {
			return buf[:0]
		}
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			return buf[i:]
		}
	}
}
