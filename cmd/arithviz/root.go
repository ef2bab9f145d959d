package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli holds what every subcommand needs: its streams and a logger built from
// the persistent flags.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger *zap.Logger

	verbose bool
}

// viewFlags are the presentation flags shared by divide and multiply.
type viewFlags struct {
	bits        int
	json        bool
	interactive bool
	step        int
}

func (v *viewFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&v.bits, "bits", "b", 0, "register width (raised to the minimum that fits the operands)")
	fs.BoolVar(&v.json, "json", false, "print the run as JSON")
	fs.BoolVarP(&v.interactive, "interactive", "i", false, "step through the table (n/p/g/G/q)")
	fs.IntVar(&v.step, "step", -1, "highlight this step (default: last)")
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "arithviz",
		Short:         "Trace binary division and Booth's multiplication step by step",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log every traced step to stderr")

	root.AddCommand(
		newDivideCmd(c),
		newMultiplyCmd(c),
		newExamplesCmd(c),
	)

	return root
}

func (c *cli) initLogger() error {
	level := zapcore.WarnLevel
	if c.verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(c.errOut),
		level,
	)
	c.logger = zap.New(core)
	return nil
}
