// Package amount implements the minimal big-endian two's-complement integer
// encoding TD.57/TD.52 mandates for signed charge and total amounts.
//
// The algorithm fills an 8-byte scratch buffer with the two's-complement
// representation of v, then strips redundant leading sign-extension bytes,
// leaving exactly one byte whose top bit still agrees with the sign. That
// makes it correct for the full int64 range, including negative amounts,
// rather than only the byte-stripping loop the reference implementation
// happened to exercise.
package amount

import "errors"

// ErrOutOfRange is returned when an amount does not fit in 8 meaningful
// octets. Every input here is a fixed-width int64, so this case cannot
// occur in practice, but the check documents and guards the invariant.
var ErrOutOfRange = errors.New("amount: 8-byte integer overflow")

// EncodeInt64 returns the shortest big-endian two's-complement
// representation of v that round-trips through DecodeInt64.
func EncodeInt64(v int64) ([]byte, error) {
	var buf [8]byte
	uv := uint64(v)
	for i := 0; i < 8; i++ {
		buf[7-i] = byte(uv >> (8 * uint(i)))
	}

	start := 0
	for start < 7 {
		b0, b1 := buf[start], buf[start+1]
		if (b0 == 0x00 && b1 < 0x80) || (b0 == 0xFF && b1 >= 0x80) {
			start++
			continue
		}
		break
	}
	if start < 0 {
		return nil, ErrOutOfRange
	}

	out := make([]byte, 8-start)
	copy(out, buf[start:])
	return out, nil
}

// DecodeInt64 interprets octets as a big-endian two's-complement integer.
func DecodeInt64(octets []byte) (int64, error) {
	if len(octets) == 0 {
		return 0, errors.New("amount: empty octet string")
	}
	if len(octets) > 8 {
		return 0, ErrOutOfRange
	}
	var v int64
	if octets[0]&0x80 != 0 {
		v = -1 // sign-extend the implicit leading 0xFF bytes
	}
	for _, b := range octets {
		v = (v << 8) | int64(b)
	}
	return v, nil
}
