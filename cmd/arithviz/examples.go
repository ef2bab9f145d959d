package main

import (
	"fmt"
	"text/tabwriter"

	"arithviz/internal/examples"

	"github.com/spf13/cobra"
)

func newExamplesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List preset operands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)

			fmt.Fprintln(tw, "Division\t\t")
			for _, ex := range examples.Divisions() {
				fmt.Fprintf(tw, "  %s\t%d ÷ %d\tarithviz divide %s\n", ex.Name, ex.Dividend, ex.Divisor, argList(ex.Dividend, ex.Divisor))
			}
			fmt.Fprintln(tw, "Booth's multiplication\t\t")
			for _, ex := range examples.Multiplications() {
				fmt.Fprintf(tw, "  %s\t%d × %d\tarithviz multiply %s\n", ex.Name, ex.Multiplicand, ex.Multiplier, argList(ex.Multiplicand, ex.Multiplier))
			}

			return tw.Flush()
		},
	}
}

// argList formats two operands as command-line arguments, inserting "--"
// when a negative number would otherwise be read as a flag.
func argList(a, b int) string {
	if a < 0 || b < 0 {
		return fmt.Sprintf("-- %d %d", a, b)
	}
	return fmt.Sprintf("%d %d", a, b)
}
