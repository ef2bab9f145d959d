package bitstring

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// MaxWidth is the widest register the package can decode into a machine word.
const MaxWidth = 64

var (
	ErrWidth    = errors.New("bit width out of range")
	ErrOverflow = errors.New("value does not fit in bit width")
	ErrSyntax   = errors.New("not a binary string")
)

// Bit is a single binary digit.
type Bit uint8

func (b Bit) String() string {
	if b == 1 {
		return "1"
	}
	return "0"
}

func bitOf(c byte) Bit {
	if c == '1' {
		return 1
	}
	return 0
}

func (b Bit) char() byte {
	if b == 1 {
		return '1'
	}
	return '0'
}

// BitString is a fixed-width register rendered most significant bit first.
type BitString string

func checkWidth(width int) error {
	if width < 1 || width > MaxWidth {
		return fmt.Errorf("%w: %d", ErrWidth, width)
	}
	return nil
}

// Zero returns width zero bits.
func Zero(width int) BitString {
	return BitString(strings.Repeat("0", width))
}

// Parse validates s as a binary string.
func Parse(s string) (BitString, error) {
	if err := checkWidth(len(s)); err != nil {
		return "", err
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return "", fmt.Errorf("%w: %q", ErrSyntax, s)
		}
	}
	return BitString(s), nil
}

// FromUnsigned renders v zero-padded to width. Values needing more than width
// bits fail instead of being truncated.
func FromUnsigned(v uint64, width int) (BitString, error) {
	if err := checkWidth(width); err != nil {
		return "", err
	}
	if bits.Len64(v) > width {
		return "", fmt.Errorf("%w: %d in %d bits", ErrOverflow, v, width)
	}
	return encode(v, width), nil
}

// FromSigned renders v in two's-complement at width.
func FromSigned(v int64, width int) (BitString, error) {
	if err := checkWidth(width); err != nil {
		return "", err
	}
	if width < MaxWidth {
		lo, hi := -(int64(1) << (width - 1)), int64(1)<<(width-1)-1
		if v < lo || v > hi {
			return "", fmt.Errorf("%w: %d in %d bits", ErrOverflow, v, width)
		}
	}
	return encode(uint64(v), width), nil
}

func encode(v uint64, width int) BitString {
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = Bit(v & 1).char()
		v >>= 1
	}
	return BitString(buf)
}

// SignificantBits is the number of bits needed to write n, at least 1.
func SignificantBits(n uint64) int {
	if n == 0 {
		return 1
	}
	return bits.Len64(n)
}

func (b BitString) Len() int { return len(b) }

func (b BitString) String() string { return string(b) }

// MSB returns the sign bit.
func (b BitString) MSB() Bit { return bitOf(b[0]) }

// LSB returns the lowest bit.
func (b BitString) LSB() Bit { return bitOf(b[len(b)-1]) }

// Unsigned decodes b as a magnitude.
func (b BitString) Unsigned() uint64 {
	var v uint64
	for i := 0; i < len(b); i++ {
		v = v<<1 | uint64(bitOf(b[i]))
	}
	return v
}

// Signed decodes b as two's-complement.
func (b BitString) Signed() int64 {
	v := b.Unsigned()
	if n := len(b); n < MaxWidth && b.MSB() == 1 {
		v |= ^uint64(0) << n
	}
	return int64(v)
}

// Invert flips every bit.
func (b BitString) Invert() BitString {
	buf := []byte(b)
	for i := range buf {
		buf[i] = (1 - bitOf(buf[i])).char()
	}
	return BitString(buf)
}

// Negate is the two's-complement negation: invert, then add one.
func (b BitString) Negate() BitString {
	return Add(b.Invert(), encode(1, len(b)))
}

// WithLSB replaces the lowest bit.
func (b BitString) WithLSB(bit Bit) BitString {
	buf := []byte(b)
	buf[len(buf)-1] = bit.char()
	return BitString(buf)
}

func padLeft(b BitString, width int, fill byte) BitString {
	if len(b) >= width {
		return b
	}
	return BitString(strings.Repeat(string(fill), width-len(b))) + b
}

// Compare orders a and b as unsigned magnitudes, zero-padding the shorter one.
// It returns -1, 0 or 1.
func Compare(a, b BitString) int {
	n := max(len(a), len(b))
	a, b = padLeft(a, n, '0'), padLeft(b, n, '0')
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] == '1' {
				return 1
			}
			return -1
		}
	}
	return 0
}

// SubtractWithBorrow computes a - b positionally on zero-padded operands. The
// result keeps the wider width; borrow reports that b was larger than a.
func SubtractWithBorrow(a, b BitString) (diff BitString, borrow bool) {
	n := max(len(a), len(b))
	a, b = padLeft(a, n, '0'), padLeft(b, n, '0')

	buf := make([]byte, n)
	var br int
	for i := n - 1; i >= 0; i-- {
		d := int(bitOf(a[i])) - int(bitOf(b[i])) - br
		br = 0
		if d < 0 {
			d += 2
			br = 1
		}
		buf[i] = Bit(d).char()
	}
	return BitString(buf), br == 1
}

// Add sums two's-complement operands, sign-extending the shorter one and
// discarding the carry out of the top bit.
func Add(a, b BitString) BitString {
	n := max(len(a), len(b))
	a, b = padLeft(a, n, a[0]), padLeft(b, n, b[0])

	buf := make([]byte, n)
	var carry int
	for i := n - 1; i >= 0; i-- {
		s := int(bitOf(a[i])) + int(bitOf(b[i])) + carry
		buf[i] = Bit(s & 1).char()
		carry = s >> 1
	}
	return BitString(buf)
}

// ShiftLeftPair shifts the combined register hi:lo left by one. hi takes lo's
// top bit and lo is zero-filled.
func ShiftLeftPair(hi, lo BitString) (BitString, BitString) {
	return hi[1:] + lo[:1], lo[1:] + "0"
}

// ArithmeticShiftRightPair shifts hi:lo right by one, replicating hi's sign
// bit. out is the bit shifted off the bottom of lo.
func ArithmeticShiftRightPair(hi, lo BitString) (newHi, newLo BitString, out Bit) {
	out = lo.LSB()
	newLo = hi[len(hi)-1:] + lo[:len(lo)-1]
	newHi = hi[:1] + hi[:len(hi)-1]
	return newHi, newLo, out
}
