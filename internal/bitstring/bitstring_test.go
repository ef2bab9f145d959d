package bitstring

import (
	"errors"
	"testing"
)

func TestFromUnsigned(t *testing.T) {
	tests := []struct {
		v     uint64
		width int
		want  BitString
	}{
		{v: 0, width: 8, want: "00000000"},
		{v: 13, width: 8, want: "00001101"},
		{v: 255, width: 8, want: "11111111"},
		{v: 1, width: 1, want: "1"},
	}

	for _, tc := range tests {
		got, err := FromUnsigned(tc.v, tc.width)
		if err != nil {
			t.Fatalf("FromUnsigned(%d, %d): %v", tc.v, tc.width, err)
		}
		if got != tc.want {
			t.Fatalf("FromUnsigned(%d, %d): expected %q, got %q", tc.v, tc.width, tc.want, got)
		}
	}
}

func TestFromUnsignedRejectsTruncation(t *testing.T) {
	if _, err := FromUnsigned(256, 8); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if _, err := FromUnsigned(1, 0); !errors.Is(err, ErrWidth) {
		t.Fatalf("expected ErrWidth, got %v", err)
	}
	if _, err := FromUnsigned(1, 65); !errors.Is(err, ErrWidth) {
		t.Fatalf("expected ErrWidth, got %v", err)
	}
}

func TestFromSignedRoundTrip(t *testing.T) {
	for v := int64(-128); v <= 127; v++ {
		b, err := FromSigned(v, 8)
		if err != nil {
			t.Fatalf("FromSigned(%d): %v", v, err)
		}
		if got := b.Signed(); got != v {
			t.Fatalf("FromSigned(%d) = %q decodes to %d", v, b, got)
		}
	}

	if _, err := FromSigned(128, 8); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow for 128, got %v", err)
	}
	if _, err := FromSigned(-129, 8); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow for -129, got %v", err)
	}
}

func TestSignedFullWidth(t *testing.T) {
	b, err := FromSigned(-2, MaxWidth)
	if err != nil {
		t.Fatalf("FromSigned: %v", err)
	}
	if got := b.Signed(); got != -2 {
		t.Fatalf("expected -2, got %d", got)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("0102"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if _, err := Parse(""); !errors.Is(err, ErrWidth) {
		t.Fatalf("expected ErrWidth, got %v", err)
	}
	b, err := Parse("1011")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Unsigned() != 11 {
		t.Fatalf("expected 11, got %d", b.Unsigned())
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b BitString
		want int
	}{
		{a: "0101", b: "0101", want: 0},
		{a: "0110", b: "0101", want: 1},
		{a: "0011", b: "0101", want: -1},
		{a: "11", b: "0011", want: 0},
		{a: "100", b: "0011", want: 1},
	}

	for _, tc := range tests {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Fatalf("Compare(%q, %q): expected %d, got %d", tc.a, tc.b, tc.want, got)
		}
	}
}

func TestSubtractWithBorrow(t *testing.T) {
	for a := uint64(0); a < 16; a++ {
		for b := uint64(0); b < 16; b++ {
			ab, _ := FromUnsigned(a, 4)
			bb, _ := FromUnsigned(b, 4)

			diff, borrow := SubtractWithBorrow(ab, bb)
			if borrow != (b > a) {
				t.Fatalf("%d-%d: expected borrow %t, got %t", a, b, b > a, borrow)
			}
			if want := (a - b) & 0xF; diff.Unsigned() != want {
				t.Fatalf("%d-%d: expected %d, got %d (%q)", a, b, want, diff.Unsigned(), diff)
			}
		}
	}
}

func TestAddWrapsModuloWidth(t *testing.T) {
	for a := int64(-8); a < 8; a++ {
		for b := int64(-8); b < 8; b++ {
			ab, _ := FromSigned(a, 4)
			bb, _ := FromSigned(b, 4)

			got := Add(ab, bb)
			want := encode(uint64(a+b), 4)
			if got != want {
				t.Fatalf("%d+%d: expected %q, got %q", a, b, want, got)
			}
		}
	}
}

func TestAddSignExtendsShorterOperand(t *testing.T) {
	// -1 (4 bits) + 3 (8 bits) = 2
	if got := Add("1111", "00000011"); got != "00000010" {
		t.Fatalf("expected 00000010, got %q", got)
	}
}

func TestNegate(t *testing.T) {
	for v := int64(-127); v <= 127; v++ {
		b, _ := FromSigned(v, 8)
		if got := b.Negate().Signed(); got != -v {
			t.Fatalf("negate %d: got %d", v, got)
		}
		if sum := Add(b, b.Negate()); sum != Zero(8) {
			t.Fatalf("%d + -%d: expected zero, got %q", v, v, sum)
		}
	}
}

func TestShiftLeftPair(t *testing.T) {
	hi, lo := ShiftLeftPair("0001", "1010")
	if hi != "0011" || lo != "0100" {
		t.Fatalf("expected 0011:0100, got %s:%s", hi, lo)
	}
}

func TestArithmeticShiftRightPair(t *testing.T) {
	hi, lo, out := ArithmeticShiftRightPair("1001", "0011")
	if hi != "1100" || lo != "1001" || out != 1 {
		t.Fatalf("expected 1100:1001 out 1, got %s:%s out %s", hi, lo, out)
	}

	hi, lo, out = ArithmeticShiftRightPair("0110", "1110")
	if hi != "0011" || lo != "0111" || out != 0 {
		t.Fatalf("expected 0011:0111 out 0, got %s:%s out %s", hi, lo, out)
	}
}

func TestSignificantBits(t *testing.T) {
	tests := map[uint64]int{0: 1, 1: 1, 2: 2, 13: 4, 255: 8, 256: 9}
	for n, want := range tests {
		if got := SignificantBits(n); got != want {
			t.Fatalf("SignificantBits(%d): expected %d, got %d", n, want, got)
		}
	}
}
