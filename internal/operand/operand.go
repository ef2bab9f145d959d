// Package operand turns user-supplied operands into integers the engines can
// trace.
package operand

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrOutOfRange   = errors.New("operand out of range")
)

// MaxMagnitude is the largest operand magnitude any engine accepts: both
// engines work in registers of at most 32 bits.
const MaxMagnitude = math.MaxInt32

// Parse reads a decimal integer. Empty and non-integer text is ErrInvalidInput.
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty operand", ErrInvalidInput)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
		}
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, s)
	}

	return int(n), CheckRange(int(n))
}

// CheckRange rejects operands whose magnitude exceeds MaxMagnitude.
func CheckRange(n int) error {
	if n > MaxMagnitude || n < -MaxMagnitude {
		return fmt.Errorf("%w: %d exceeds ±%d", ErrOutOfRange, n, MaxMagnitude)
	}
	return nil
}

// Abs returns |n| as an unsigned magnitude.
func Abs(n int) uint64 {
	if n < 0 {
		return uint64(-n)
	}
	return uint64(n)
}

// Value is a form field: it accepts a JSON number or a JSON string and keeps
// the raw text until Int is called, so a missing or blank field is reported
// the same way as a non-numeric one.
type Value struct {
	raw string
}

// NewValue wraps raw operand text.
func NewValue(raw string) Value {
	return Value{raw: raw}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		v.raw = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.raw = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, data)
	}
	v.raw = n.String()
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// Int parses the wrapped text.
func (v Value) Int() (int, error) {
	return Parse(v.raw)
}

func (v Value) String() string {
	return v.raw
}
