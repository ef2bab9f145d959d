package booth

import (
	"errors"
	"testing"

	"arithviz/internal/bitstring"
	"arithviz/internal/operand"

	"github.com/google/go-cmp/cmp"
)

func TestMultiplyNegativeFiveByThree(t *testing.T) {
	run, err := Multiply(-5, 3, 0)
	if err != nil {
		t.Fatalf("Multiply: %v", err)
	}

	if got := run.Product(); got != -15 {
		t.Fatalf("expected -15, got %d", got)
	}
	if got := run.ProductBits(); got != "1111111111110001" {
		t.Fatalf("expected A:Q 1111111111110001, got %q", got)
	}
	if run.Len() != run.BitLength+1 {
		t.Fatalf("expected %d steps, got %d", run.BitLength+1, run.Len())
	}
}

func TestMultiplyStepTrace(t *testing.T) {
	run, err := Multiply(-5, 3, 0)
	if err != nil {
		t.Fatalf("Multiply: %v", err)
	}

	if run.M != "11111011" || run.MNeg != "00000101" {
		t.Fatalf("unexpected M %q / -M %q", run.M, run.MNeg)
	}

	want := []Step{
		{Index: 0, Q0: 1, QMinus1: 0, Action: ActionInitialize, A: "00000000", Q: "00000011", NewQMinus1: 0},
		{Index: 1, Q0: 1, QMinus1: 0, Action: ActionSubtract, A: "00000010", Q: "10000001", NewQMinus1: 1},
		{Index: 2, Q0: 1, QMinus1: 1, Action: ActionNone, A: "00000001", Q: "01000000", NewQMinus1: 1},
		{Index: 3, Q0: 0, QMinus1: 1, Action: ActionAdd, A: "11111110", Q: "00100000", NewQMinus1: 0},
		{Index: 4, Q0: 0, QMinus1: 0, Action: ActionNone, A: "11111111", Q: "00010000", NewQMinus1: 0},
		{Index: 5, Q0: 0, QMinus1: 0, Action: ActionNone, A: "11111111", Q: "10001000", NewQMinus1: 0},
		{Index: 6, Q0: 0, QMinus1: 0, Action: ActionNone, A: "11111111", Q: "11000100", NewQMinus1: 0},
		{Index: 7, Q0: 0, QMinus1: 0, Action: ActionNone, A: "11111111", Q: "11100010", NewQMinus1: 0},
		{Index: 8, Q0: 0, QMinus1: 0, Action: ActionNone, A: "11111111", Q: "11110001", NewQMinus1: 0},
	}

	ignoreText := cmp.FilterPath(func(p cmp.Path) bool {
		name := p.Last().String()
		return name == ".Explanation" || name == ".ActionLabel"
	}, cmp.Ignore())

	if diff := cmp.Diff(want, run.Steps, ignoreText); diff != "" {
		t.Fatalf("step trace mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiplyAllEightBitOperands(t *testing.T) {
	for m := -128; m <= 127; m++ {
		for q := -128; q <= 127; q++ {
			run, err := Multiply(m, q, 8)
			if err != nil {
				t.Fatalf("%d*%d: %v", m, q, err)
			}
			if got := run.Product(); got != int64(m*q) {
				t.Fatalf("%d*%d: expected %d, got %d (A:Q %s)", m, q, m*q, got, run.ProductBits())
			}
			if run.Len() != run.BitLength+1 {
				t.Fatalf("%d*%d: expected %d steps, got %d", m, q, run.BitLength+1, run.Len())
			}
		}
	}
}

func TestMultiplyWideOperands(t *testing.T) {
	tests := []struct{ m, q int }{
		{m: 1000, q: -1000},
		{m: -32768, q: 32767},
		{m: operand.MaxMagnitude, q: -operand.MaxMagnitude},
		{m: 0, q: operand.MaxMagnitude},
	}

	for _, tc := range tests {
		run, err := Multiply(tc.m, tc.q, 0)
		if err != nil {
			t.Fatalf("%d*%d: %v", tc.m, tc.q, err)
		}
		if got := run.Product(); got != int64(tc.m)*int64(tc.q) {
			t.Fatalf("%d*%d: expected %d, got %d", tc.m, tc.q, int64(tc.m)*int64(tc.q), got)
		}
	}
}

func TestMinBitLengthFor(t *testing.T) {
	tests := []struct{ m, q, want int }{
		{m: 0, q: 0, want: 8},
		{m: -5, q: 3, want: 8},
		{m: 127, q: 1, want: 8},
		{m: -128, q: 1, want: 9},
		{m: 1000, q: 2, want: 11},
		{m: operand.MaxMagnitude, q: 1, want: 32},
	}

	for _, tc := range tests {
		if got := MinBitLengthFor(tc.m, tc.q); got != tc.want {
			t.Fatalf("MinBitLengthFor(%d, %d): expected %d, got %d", tc.m, tc.q, tc.want, got)
		}
	}
}

func TestMultiplyWidensRequestedBitLength(t *testing.T) {
	run, err := Multiply(1000, 2, 4)
	if err != nil {
		t.Fatalf("Multiply: %v", err)
	}
	if run.BitLength != 11 {
		t.Fatalf("expected width 11, got %d", run.BitLength)
	}

	run, err = Multiply(3, 2, 16)
	if err != nil {
		t.Fatalf("Multiply: %v", err)
	}
	if run.BitLength != 16 || run.Len() != 17 {
		t.Fatalf("expected 16-bit run with 17 steps, got %d bits and %d steps", run.BitLength, run.Len())
	}
}

func TestMultiplyNegationCancels(t *testing.T) {
	run, err := Multiply(-77, 5, 0)
	if err != nil {
		t.Fatalf("Multiply: %v", err)
	}
	if sum := bitstring.Add(run.M, run.MNeg); sum != bitstring.Zero(run.BitLength) {
		t.Fatalf("expected M + -M = 0, got %q", sum)
	}
}

func TestMultiplyErrors(t *testing.T) {
	if _, err := Multiply(1<<40, 1, 0); !errors.Is(err, operand.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := Multiply(3, 2, 40); !errors.Is(err, operand.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for width, got %v", err)
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		q0, qm1 bitstring.Bit
		want    Action
	}{
		{q0: 0, qm1: 0, want: ActionNone},
		{q0: 0, qm1: 1, want: ActionAdd},
		{q0: 1, qm1: 0, want: ActionSubtract},
		{q0: 1, qm1: 1, want: ActionNone},
	}

	for _, tc := range tests {
		if got := Decide(tc.q0, tc.qm1); got != tc.want {
			t.Fatalf("Decide(%s, %s): expected %s, got %s", tc.q0, tc.qm1, tc.want, got)
		}
	}
}

func TestStepExplanationDescribesBitPair(t *testing.T) {
	run, err := Multiply(-5, 3, 0)
	if err != nil {
		t.Fatalf("Multiply: %v", err)
	}

	want := "Step 1: Q₀=1, Q₋₁=0 → Start of 1s string detected. Subtract multiplicand -5 from accumulator, then perform arithmetic right shift."
	if got := run.Steps[1].Explanation; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := run.Steps[2].ActionLabel; got != "No operation" {
		t.Fatalf("expected No operation, got %q", got)
	}
	if got := run.Steps[3].ActionLabel; got != "Add M (-5)" {
		t.Fatalf("expected Add M (-5), got %q", got)
	}
}
