package main

import (
	"encoding/json"
	"fmt"
	"io"

	"arithviz/internal/division"
	"arithviz/internal/operand"
	"arithviz/internal/stepper"
	"arithviz/internal/table"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDivideCmd(c *cli) *cobra.Command {
	var (
		view        viewFlags
		algorithm   string
		significant bool
	)

	cmd := &cobra.Command{
		Use:   "divide DIVIDEND DIVISOR",
		Short: "Trace restoring or non-restoring binary division",
		Example: `  arithviz divide 13 4
  arithviz divide 100 7 --algorithm non-restoring --significant-bits
  arithviz divide -- -13 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dividend, err := operand.Parse(args[0])
			if err != nil {
				return fmt.Errorf("dividend: %w", err)
			}
			divisor, err := operand.Parse(args[1])
			if err != nil {
				return fmt.Errorf("divisor: %w", err)
			}
			alg, err := division.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}

			mode := division.Fixed
			if significant {
				mode = division.SignificantBits
			}

			run, err := division.Divide(dividend, divisor, alg, view.bits, division.WithMode(mode))
			if err != nil {
				return err
			}

			for _, s := range run.Steps {
				c.logger.Debug("division step",
					zap.Int("step", s.Index),
					zap.String("action", s.ActionLabel),
					zap.Stringer("a", s.A),
					zap.Stringer("q", s.Q),
					zap.String("quotient_bits", s.QuotientBits),
				)
			}
			if run.MagnitudeOnly {
				c.logger.Warn("negative operands are traced by magnitude",
					zap.Int("dividend", dividend),
					zap.Int("divisor", divisor),
				)
			}

			if view.json {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(run)
			}

			render := func(w io.Writer, cur stepper.Cursor) error {
				return table.Division(w, run, cur)
			}
			return c.present(run.Len(), view, render)
		},
	}

	view.register(cmd.Flags())
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(division.Restoring), "restoring or non-restoring")
	cmd.Flags().BoolVar(&significant, "significant-bits", false, "iterate once per significant dividend bit")

	return cmd
}
