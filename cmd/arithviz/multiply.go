package main

import (
	"encoding/json"
	"fmt"
	"io"

	"arithviz/internal/booth"
	"arithviz/internal/operand"
	"arithviz/internal/stepper"
	"arithviz/internal/table"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMultiplyCmd(c *cli) *cobra.Command {
	var view viewFlags

	cmd := &cobra.Command{
		Use:   "multiply MULTIPLICAND MULTIPLIER",
		Short: "Trace Booth's multiplication",
		Example: `  arithviz multiply 7 3
  arithviz multiply -- -5 3
  arithviz multiply --bits 16 -- 12 -2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := operand.Parse(args[0])
			if err != nil {
				return fmt.Errorf("multiplicand: %w", err)
			}
			q, err := operand.Parse(args[1])
			if err != nil {
				return fmt.Errorf("multiplier: %w", err)
			}

			run, err := booth.Multiply(m, q, view.bits)
			if err != nil {
				return err
			}

			for _, s := range run.Steps {
				c.logger.Debug("booth step",
					zap.Int("step", s.Index),
					zap.String("pair", s.Q0.String()+s.QMinus1.String()),
					zap.String("action", s.ActionLabel),
					zap.Stringer("a", s.A),
					zap.Stringer("q", s.Q),
				)
			}

			if view.json {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(run)
			}

			render := func(w io.Writer, cur stepper.Cursor) error {
				return table.Booth(w, run, cur)
			}
			return c.present(run.Len(), view, render)
		},
	}

	view.register(cmd.Flags())

	return cmd
}
