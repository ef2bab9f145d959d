// Package examples lists the preset operand pairs offered next to each
// calculator.
package examples

// Division is a preset dividend/divisor pair.
type Division struct {
	Name     string `json:"name"`
	Dividend int    `json:"dividend"`
	Divisor  int    `json:"divisor"`
}

// Multiplication is a preset multiplicand/multiplier pair.
type Multiplication struct {
	Name         string `json:"name"`
	Multiplicand int    `json:"multiplicand"`
	Multiplier   int    `json:"multiplier"`
}

var divisions = []Division{
	{Name: "Basic division", Dividend: 13, Divisor: 4},
	{Name: "Odd dividend", Dividend: 7, Divisor: 2},
	{Name: "Exact division", Dividend: 15, Divisor: 3},
	{Name: "Larger dividend", Dividend: 100, Divisor: 7},
}

var multiplications = []Multiplication{
	{Name: "Negative multiplicand", Multiplicand: -5, Multiplier: 3},
	{Name: "Positive operands", Multiplicand: 7, Multiplier: 3},
	{Name: "Both negative", Multiplicand: -4, Multiplier: -6},
	{Name: "Negative multiplier", Multiplicand: 12, Multiplier: -2},
}

// Divisions returns a copy of the division presets.
func Divisions() []Division {
	return append([]Division(nil), divisions...)
}

// Multiplications returns a copy of the multiplication presets.
func Multiplications() []Multiplication {
	return append([]Multiplication(nil), multiplications...)
}
