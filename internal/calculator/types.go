package calculator

import (
	"arithviz/internal/bitstring"
	"arithviz/internal/booth"
	"arithviz/internal/division"
	"arithviz/internal/examples"
	"arithviz/internal/operand"
)

// DivideRequest is the JSON body for POST /calculator/divide. Operands may be
// JSON numbers or strings.
type DivideRequest struct {
	Dividend  operand.Value `json:"dividend"`
	Divisor   operand.Value `json:"divisor"`
	Algorithm string        `json:"algorithm"`  // "restoring" (default) or "non-restoring"
	Mode      string        `json:"mode"`       // "fixed" (default) or "significant-bits"
	BitLength int           `json:"bit_length"` // 0 picks the minimum width
	Cursor    int           `json:"cursor"`     // step index the viewer is on
	Move      string        `json:"move"`       // "next", "previous", "first", "last"
}

// MultiplyRequest is the JSON body for POST /calculator/multiply.
type MultiplyRequest struct {
	Multiplicand operand.Value `json:"multiplicand"`
	Multiplier   operand.Value `json:"multiplier"`
	BitLength    int           `json:"bit_length"`
	Cursor       int           `json:"cursor"`
	Move         string        `json:"move"`
}

// CursorView describes where the viewer is inside a run.
type CursorView struct {
	Index    int    `json:"index"`
	Position string `json:"position"`
	AtStart  bool   `json:"at_start"`
	AtEnd    bool   `json:"at_end"`
}

// DivideCursor is the step under the cursor and the values derived from it.
type DivideCursor struct {
	CursorView
	Step      division.Step `json:"step"`
	Quotient  uint64        `json:"quotient"`
	Remainder uint64        `json:"remainder"`
}

// ExpectedDivision is the floor quotient and remainder of the signed
// operands.
type ExpectedDivision struct {
	Quotient  int `json:"quotient"`
	Remainder int `json:"remainder"`
}

// DivideResponse is the JSON response for POST /calculator/divide.
type DivideResponse struct {
	Operation       string              `json:"operation"`
	Run             division.Run        `json:"run"`
	Quotient        uint64              `json:"quotient"`
	Remainder       uint64              `json:"remainder"`
	QuotientBinary  bitstring.BitString `json:"quotient_binary"`
	RemainderBinary bitstring.BitString `json:"remainder_binary"`
	Expected        ExpectedDivision    `json:"expected"`
	TotalSteps      int                 `json:"total_steps"`
	Cursor          DivideCursor        `json:"cursor"`
}

// MultiplyCursor is the step under the cursor and the product decoded from
// its A:Q snapshot.
type MultiplyCursor struct {
	CursorView
	Step          booth.Step          `json:"step"`
	Product       int64               `json:"product"`
	ProductBinary bitstring.BitString `json:"product_binary"`
}

// MultiplyResponse is the JSON response for POST /calculator/multiply.
type MultiplyResponse struct {
	Operation     string              `json:"operation"`
	Run           booth.Run           `json:"run"`
	Product       int64               `json:"product"`
	ProductBinary bitstring.BitString `json:"product_binary"`
	Expected      int64               `json:"expected"`
	TotalSteps    int                 `json:"total_steps"`
	Cursor        MultiplyCursor      `json:"cursor"`
}

// ExamplesResponse is the JSON response for GET /calculator/examples.
type ExamplesResponse struct {
	Division       []examples.Division       `json:"division"`
	Multiplication []examples.Multiplication `json:"multiplication"`
}
