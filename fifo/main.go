package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/fifo/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Exits if the process was invoked for shell completion.
	cmd.Completion().Complete("fifo")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if name := flag.Arg(0); name != "" && !isRegistered(commander, name) {
		if found, code := cmd.RunExtension(ctx, name, flag.Args()[1:]); found {
			stop()
			os.Exit(code)
		}
	}

	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}

// isRegistered reports whether name is a subcommand of c.
func isRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}
