// Package table renders a finished run and a cursor as a plain-text register
// table. It only reads the run; it never computes anything the engines did
// not record.
package table

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"arithviz/internal/booth"
	"arithviz/internal/division"
	"arithviz/internal/stepper"
)

const (
	markActive    = ">"
	markCompleted = "+"
)

func marker(row int, c stepper.Cursor) string {
	switch {
	case row == c.Index():
		return markActive
	case row < c.Index():
		return markCompleted
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Division writes the register table for a division run followed by the
// result summary.
func Division(w io.Writer, run division.Run, c stepper.Cursor) error {
	var buf bytes.Buffer

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tStep\tOperation\tA\tQ\tM\tQuotient\tAction\tExplanation")
	for i, s := range run.Steps {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			marker(i, c), s.Index, s.Label, s.A, s.Q, s.M, orNA(s.QuotientBits), s.ActionLabel, s.Explanation)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, c.Position())
	if len(run.Steps) > 0 {
		q, r := run.Steps[c.Index()].Result()
		fmt.Fprintf(&buf, "At this step: quotient bits %s (%d), A = %d\n",
			orNA(run.Steps[c.Index()].QuotientBits), q, r)

		fmt.Fprintf(&buf, "Calculation: %d ÷ %d = %d R %d\n", run.Dividend, run.Divisor, run.Quotient(), run.Remainder())
		fmt.Fprintf(&buf, "Algorithm Used: %s Division\n", title(string(run.Algorithm)))
		fmt.Fprintf(&buf, "Quotient: %d (%s)\n", run.Quotient(), run.QuotientBinary())
		fmt.Fprintf(&buf, "Remainder: %d (%s)\n", run.Remainder(), run.RemainderBinary())
		fmt.Fprintf(&buf, "Total Steps: %d (%d bit operations)\n", run.Len(), run.Iterations())
		if run.MagnitudeOnly {
			fmt.Fprintln(&buf, "Note: negative operands were traced by magnitude; signs are not applied.")
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Booth writes the register table for a multiplication run followed by the
// result summary.
func Booth(w io.Writer, run booth.Run, c stepper.Cursor) error {
	var buf bytes.Buffer

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tStep\tQ₀\tQ₋₁\tAction\tA\tQ\tQ₋₁'\tExplanation")
	for i, s := range run.Steps {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			marker(i, c), s.Index, s.Q0, s.QMinus1, s.ActionLabel, s.A, s.Q, s.NewQMinus1, s.Explanation)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, c.Position())
	if len(run.Steps) > 0 {
		s := run.Steps[c.Index()]
		fmt.Fprintf(&buf, "At this step: A:Q = %s (%d)\n", s.ProductBits(), s.Product())

		fmt.Fprintf(&buf, "Calculation: %d × %d = %d\n", run.Multiplicand, run.Multiplier, int64(run.Multiplicand)*int64(run.Multiplier))
		fmt.Fprintf(&buf, "Booth's Algorithm Result: %d\n", run.Product())
		fmt.Fprintf(&buf, "Binary Representation: %s\n", run.ProductBits())
		fmt.Fprintf(&buf, "Total Steps: %d (%d bit operations)\n", run.Len(), run.Iterations())
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
