// Package division traces unsigned binary long division through the A, Q and
// M registers, one shift/compare/subtract cycle per step.
package division

import (
	"errors"
	"fmt"

	"arithviz/internal/bitstring"
	"arithviz/internal/operand"
)

var ErrDivisionByZero = errors.New("division by zero")

// MinBitLength is the narrowest register width the trace is drawn with.
const MinBitLength = 8

// Algorithm selects the narrative used for each step.
type Algorithm string

const (
	Restoring    Algorithm = "restoring"
	NonRestoring Algorithm = "non-restoring"
)

// ParseAlgorithm accepts "restoring" and "non-restoring". The empty string
// selects Restoring.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", Restoring:
		return Restoring, nil
	case NonRestoring:
		return NonRestoring, nil
	}
	return "", fmt.Errorf("%w: unknown algorithm %q", operand.ErrInvalidInput, s)
}

// Mode decides how many iterations a run performs.
type Mode string

const (
	// Fixed iterates once per register bit.
	Fixed Mode = "fixed"
	// SignificantBits iterates once per significant bit of the dividend.
	SignificantBits Mode = "significant-bits"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Fixed:
		return Fixed, nil
	case SignificantBits:
		return SignificantBits, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", operand.ErrInvalidInput, s)
}

// Action is what a step did to the accumulator.
type Action string

const (
	ActionInitialize Action = "initialize"
	ActionSubtract   Action = "subtract"
	ActionKeep       Action = "keep"
)

// Step is one row of the register table.
type Step struct {
	Index        int                 `json:"index"`
	Label        string              `json:"label"`
	A            bitstring.BitString `json:"a"`
	Q            bitstring.BitString `json:"q"`
	M            bitstring.BitString `json:"m"`
	QuotientBits string              `json:"quotient_bits"`
	Action       Action              `json:"action"`
	ActionLabel  string              `json:"action_label"`
	Explanation  string              `json:"explanation"`
}

// Result re-derives the quotient built so far and the partial remainder from
// the step's own snapshot.
func (s Step) Result() (quotient, remainder uint64) {
	if s.QuotientBits != "" {
		quotient = bitstring.BitString(s.QuotientBits).Unsigned()
	}
	return quotient, s.A.Unsigned()
}

// Run is a complete division trace. It is never modified after Divide returns.
type Run struct {
	Dividend  int                 `json:"dividend"`
	Divisor   int                 `json:"divisor"`
	Algorithm Algorithm           `json:"algorithm"`
	Mode      Mode                `json:"mode"`
	BitLength int                 `json:"bit_length"`
	M         bitstring.BitString `json:"m"`
	// MagnitudeOnly is set when a negative operand was traced by magnitude.
	MagnitudeOnly bool   `json:"magnitude_only"`
	Steps         []Step `json:"steps"`
}

func (r Run) Len() int { return len(r.Steps) }

// Iterations is the number of shift/compare cycles, excluding Initialize.
func (r Run) Iterations() int { return len(r.Steps) - 1 }

func (r Run) final() Step { return r.Steps[len(r.Steps)-1] }

func (r Run) Quotient() uint64 {
	q, _ := r.final().Result()
	return q
}

func (r Run) Remainder() uint64 {
	return r.final().A.Unsigned()
}

// QuotientBinary is the final quotient at the run's register width.
func (r Run) QuotientBinary() bitstring.BitString {
	b, _ := bitstring.FromUnsigned(r.Quotient(), r.BitLength)
	return b
}

func (r Run) RemainderBinary() bitstring.BitString {
	return r.final().A
}

type options struct {
	mode Mode
}

// Option adjusts a Divide call.
type Option func(*options)

// WithMode selects the iteration mode.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithSignificantBits iterates once per significant dividend bit.
func WithSignificantBits() Option {
	return WithMode(SignificantBits)
}

// BitLengthFor returns the register width used for the operands: at least
// MinBitLength and one guard bit above the wider operand, so the shifted
// accumulator cannot overflow.
func BitLengthFor(dividend, divisor, requested int) int {
	need := max(bitstring.SignificantBits(operand.Abs(dividend)), bitstring.SignificantBits(operand.Abs(divisor))) + 1
	return max(MinBitLength, need, requested)
}

// Expected is the floor quotient and matching remainder, shown next to the
// trace for comparison. For negative operands it differs from the traced
// magnitudes.
func Expected(dividend, divisor int) (quotient, remainder int, err error) {
	if divisor == 0 {
		return 0, 0, ErrDivisionByZero
	}
	quotient, remainder = dividend/divisor, dividend%divisor
	if remainder != 0 && (remainder < 0) != (divisor < 0) {
		quotient--
		remainder += divisor
	}
	return quotient, remainder, nil
}

// Divide traces dividend ÷ divisor. A zero bitLength picks the narrowest
// width that holds both operands.
func Divide(dividend, divisor int, alg Algorithm, bitLength int, opts ...Option) (Run, error) {
	o := options{mode: Fixed}
	for _, opt := range opts {
		opt(&o)
	}

	if divisor == 0 {
		return Run{}, ErrDivisionByZero
	}
	if err := operand.CheckRange(dividend); err != nil {
		return Run{}, err
	}
	if err := operand.CheckRange(divisor); err != nil {
		return Run{}, err
	}
	if bitLength > 32 {
		return Run{}, fmt.Errorf("%w: bit length %d exceeds 32", operand.ErrOutOfRange, bitLength)
	}
	if _, err := ParseAlgorithm(string(alg)); err != nil {
		return Run{}, err
	}
	if _, err := ParseMode(string(o.mode)); err != nil {
		return Run{}, err
	}
	if alg == "" {
		alg = Restoring
	}

	n := BitLengthFor(dividend, divisor, bitLength)
	dv, ds := operand.Abs(dividend), operand.Abs(divisor)

	iterations := n
	load := dv
	if o.mode == SignificantBits {
		iterations = bitstring.SignificantBits(dv)
		load = dv << (n - iterations)
	}

	Q, err := bitstring.FromUnsigned(load, n)
	if err != nil {
		return Run{}, fmt.Errorf("loading dividend: %w", err)
	}
	M, err := bitstring.FromUnsigned(ds, n)
	if err != nil {
		return Run{}, fmt.Errorf("loading divisor: %w", err)
	}
	A := bitstring.Zero(n)

	run := Run{
		Dividend:      dividend,
		Divisor:       divisor,
		Algorithm:     alg,
		Mode:          o.mode,
		BitLength:     n,
		M:             M,
		MagnitudeOnly: dividend < 0 || divisor < 0,
		Steps:         make([]Step, 0, iterations+1),
	}

	run.Steps = append(run.Steps, Step{
		Index:       0,
		Label:       "Initialize",
		A:           A,
		Q:           Q,
		M:           M,
		Action:      ActionInitialize,
		ActionLabel: "Initialize registers",
		Explanation: fmt.Sprintf("Initialize: A=0, Q=%d (%s), M=%d (%s), quotient empty. Using %s division, %d iterations.",
			dv, Q, ds, M, alg, iterations),
	})

	quotient := make([]byte, 0, iterations)
	for i := 1; i <= iterations; i++ {
		A, Q = bitstring.ShiftLeftPair(A, Q)

		var q bitstring.Bit
		action := ActionKeep
		if bitstring.Compare(A, M) >= 0 {
			A, _ = bitstring.SubtractWithBorrow(A, M)
			q = 1
			action = ActionSubtract
		}
		Q = Q.WithLSB(q)
		quotient = append(quotient, q.String()...)

		run.Steps = append(run.Steps, Step{
			Index:        i,
			Label:        fmt.Sprintf("Step %d", i),
			A:            A,
			Q:            Q,
			M:            M,
			QuotientBits: string(quotient),
			Action:       action,
			ActionLabel:  actionLabel(alg, action),
			Explanation:  explain(alg, action, i),
		})
	}

	return run, nil
}

func actionLabel(alg Algorithm, action Action) string {
	switch {
	case action == ActionSubtract:
		return "Subtract M"
	case alg == NonRestoring:
		return "No operation"
	default:
		return "No subtraction"
	}
}

func explain(alg Algorithm, action Action, i int) string {
	if alg == NonRestoring {
		if action == ActionSubtract {
			return fmt.Sprintf("Step %d: Shift left. A >= M, subtract M. Set quotient bit = 1.", i)
		}
		return fmt.Sprintf("Step %d: Shift left. A < M, no operation. Set quotient bit = 0.", i)
	}
	if action == ActionSubtract {
		return fmt.Sprintf("Step %d: Shift left, A >= M. Subtract M, set quotient bit = 1.", i)
	}
	return fmt.Sprintf("Step %d: Shift left, A < M. No subtraction, set quotient bit = 0.", i)
}
