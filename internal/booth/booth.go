// Package booth traces Booth's signed multiplication over the A, Q, Q₋₁ and M
// registers.
package booth

import (
	"fmt"
	"math/bits"

	"arithviz/internal/bitstring"
	"arithviz/internal/operand"
)

const (
	MinBitLength = 8
	// MaxBitLength keeps the A:Q product register within 64 bits.
	MaxBitLength = 32
)

// Action is the accumulator update selected by (Q₀, Q₋₁).
type Action string

const (
	ActionInitialize Action = "initialize"
	ActionNone       Action = "none"
	ActionAdd        Action = "add"
	ActionSubtract   Action = "subtract"
)

// Decide maps the bit pair read before the shift to an accumulator update.
func Decide(q0, qMinus1 bitstring.Bit) Action {
	switch {
	case q0 == 0 && qMinus1 == 1:
		return ActionAdd
	case q0 == 1 && qMinus1 == 0:
		return ActionSubtract
	default:
		return ActionNone
	}
}

// Step is one row of the register table. Q0 and QMinus1 are the bits read
// before the shift; A, Q and NewQMinus1 are the state after it.
type Step struct {
	Index       int                 `json:"index"`
	Q0          bitstring.Bit       `json:"q0"`
	QMinus1     bitstring.Bit       `json:"q_minus_1"`
	Action      Action              `json:"action"`
	ActionLabel string              `json:"action_label"`
	A           bitstring.BitString `json:"a"`
	Q           bitstring.BitString `json:"q"`
	NewQMinus1  bitstring.Bit       `json:"new_q_minus_1"`
	Explanation string              `json:"explanation"`
}

// ProductBits is the combined A:Q register.
func (s Step) ProductBits() bitstring.BitString {
	return s.A + s.Q
}

// Product decodes A:Q as two's-complement. It is the true product only at
// the last step of a run.
func (s Step) Product() int64 {
	return s.ProductBits().Signed()
}

// Run is a complete multiplication trace, immutable once returned.
type Run struct {
	Multiplicand int                 `json:"multiplicand"`
	Multiplier   int                 `json:"multiplier"`
	BitLength    int                 `json:"bit_length"`
	M            bitstring.BitString `json:"m"`
	MNeg         bitstring.BitString `json:"m_neg"`
	Steps        []Step              `json:"steps"`
}

func (r Run) Len() int { return len(r.Steps) }

func (r Run) Iterations() int { return len(r.Steps) - 1 }

func (r Run) Product() int64 {
	return r.Steps[len(r.Steps)-1].Product()
}

func (r Run) ProductBits() bitstring.BitString {
	return r.Steps[len(r.Steps)-1].ProductBits()
}

// MinBitLengthFor returns ceil(log2(max(|m|,|q|)+1)) + 1, floored at
// MinBitLength.
func MinBitLengthFor(multiplicand, multiplier int) int {
	m := max(operand.Abs(multiplicand), operand.Abs(multiplier))
	// ceil(log2(m+1)) is the bit length of m.
	return max(MinBitLength, bits.Len64(m)+1)
}

// Multiply traces multiplicand × multiplier. bitLength is raised to the
// minimum width that holds both operands with a sign guard bit; zero selects
// that minimum.
func Multiply(multiplicand, multiplier int, bitLength int) (Run, error) {
	if err := operand.CheckRange(multiplicand); err != nil {
		return Run{}, err
	}
	if err := operand.CheckRange(multiplier); err != nil {
		return Run{}, err
	}

	n := max(bitLength, MinBitLengthFor(multiplicand, multiplier))
	if n > MaxBitLength {
		return Run{}, fmt.Errorf("%w: bit length %d exceeds %d", operand.ErrOutOfRange, n, MaxBitLength)
	}

	M, err := bitstring.FromSigned(int64(multiplicand), n)
	if err != nil {
		return Run{}, fmt.Errorf("loading multiplicand: %w", err)
	}
	Q, err := bitstring.FromSigned(int64(multiplier), n)
	if err != nil {
		return Run{}, fmt.Errorf("loading multiplier: %w", err)
	}
	MNeg := M.Negate()
	A := bitstring.Zero(n)
	var qMinus1 bitstring.Bit

	run := Run{
		Multiplicand: multiplicand,
		Multiplier:   multiplier,
		BitLength:    n,
		M:            M,
		MNeg:         MNeg,
		Steps:        make([]Step, 0, n+1),
	}

	run.Steps = append(run.Steps, Step{
		Index:       0,
		Q0:          Q.LSB(),
		QMinus1:     qMinus1,
		Action:      ActionInitialize,
		ActionLabel: "Initialize",
		A:           A,
		Q:           Q,
		NewQMinus1:  qMinus1,
		Explanation: fmt.Sprintf("Initialize: A=0, Q=%d (%s), Q₋₁=0, M=%d (%s), -M=%s. Using %d-bit representation.",
			multiplier, Q, multiplicand, M, MNeg, n),
	})

	for i := 1; i <= n; i++ {
		q0 := Q.LSB()
		action := Decide(q0, qMinus1)

		switch action {
		case ActionAdd:
			A = bitstring.Add(A, M)
		case ActionSubtract:
			A = bitstring.Add(A, MNeg)
		}

		var out bitstring.Bit
		A, Q, out = bitstring.ArithmeticShiftRightPair(A, Q)

		run.Steps = append(run.Steps, Step{
			Index:       i,
			Q0:          q0,
			QMinus1:     qMinus1,
			Action:      action,
			ActionLabel: actionLabel(action, multiplicand),
			A:           A,
			Q:           Q,
			NewQMinus1:  out,
			Explanation: explain(action, q0, qMinus1, multiplicand, i),
		})

		qMinus1 = out
	}

	return run, nil
}

func actionLabel(action Action, m int) string {
	switch action {
	case ActionAdd:
		return fmt.Sprintf("Add M (%d)", m)
	case ActionSubtract:
		return fmt.Sprintf("Subtract M (%d)", m)
	}
	return "No operation"
}

func explain(action Action, q0, qMinus1 bitstring.Bit, m, i int) string {
	prefix := fmt.Sprintf("Step %d: Q₀=%s, Q₋₁=%s →", i, q0, qMinus1)

	switch action {
	case ActionAdd:
		return fmt.Sprintf("%s End of 1s string detected. Add multiplicand %d to accumulator, then perform arithmetic right shift.", prefix, m)
	case ActionSubtract:
		return fmt.Sprintf("%s Start of 1s string detected. Subtract multiplicand %d from accumulator, then perform arithmetic right shift.", prefix, m)
	}
	if q0 == 1 {
		return prefix + " Middle of 1s string detected. Just perform arithmetic right shift."
	}
	return prefix + " String of 0s detected. Just perform arithmetic right shift."
}
