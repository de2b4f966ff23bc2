package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type runCmd struct {
	strict bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "execute the session commands of a file" }
func (*runCmd) Usage() string {
	return `fifo run [-strict] <file>

  Executes the session commands of a file, "-" for the standard input.
  See 'fifo topic session' for the list of commands.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Exit with a failure status if any command failed")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "run requires exactly one file")
		return subcommands.ExitUsageError
	}
	cfg, logger, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer logger.Sync()

	name := f.Arg(0)
	var in io.Reader = os.Stdin
	if name != "-" {
		file, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		in = file
	}

	s := NewSession(os.Stdout, cfg.Currency, logger)
	s.Markdown = markdownRenderer(cfg.Style)
	if err := s.Run(ctx, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	logger.Debug("script executed", zap.String("file", name), zap.Int("failures", s.Failures))

	if c.strict && s.Failures > 0 {
		fmt.Fprintf(os.Stderr, "%d command(s) failed\n", s.Failures)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
