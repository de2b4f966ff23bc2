package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/fifo"
	"github.com/etnz/fifo/docs"
	"github.com/etnz/fifo/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Session executes commands read line by line against a Tracker.
type Session struct {
	Tracker  *fifo.Tracker
	Currency string
	Out      io.Writer
	Markdown func(string) string // renders markdown before printing it.
	Log      *zap.Logger
	Prompt   string // printed before reading each line, if not empty.

	// Failures counts the commands that failed.
	Failures int
}

// NewSession returns a Session on a new Tracker, printing plain markdown to out.
func NewSession(out io.Writer, currency string, logger *zap.Logger) *Session {
	return &Session{
		Tracker:  fifo.NewTracker(),
		Currency: currency,
		Out:      out,
		Markdown: func(md string) string { return md },
		Log:      logger,
	}
}

// Run executes the commands read from in until the end of the input, or a quit command.
// A failing command is reported, and the session goes on.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Prompt != "" {
			fmt.Fprint(s.Out, s.Prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		quit, err := s.Exec(scanner.Text())
		if err != nil {
			s.Failures++
			s.Log.Debug("command failed", zap.String("line", scanner.Text()), zap.Error(err))
			fmt.Fprintf(s.Out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec executes a single command line. It returns true if the line asks to end the session.
func (s *Session) Exec(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	args := strings.Fields(line)
	name, args := args[0], args[1:]

	switch name {
	case "buy":
		return false, s.buy(args)
	case "sell":
		return false, s.sell(args)
	case "gains":
		if len(args) != 0 {
			return false, usageError("gains")
		}
		s.print(renderer.Gains(s.Tracker.TotalRealizedGain(), s.Currency))
	case "position":
		if len(args) != 0 {
			return false, usageError("position")
		}
		s.print(renderer.Position(s.Tracker.Snapshot(), s.Currency))
	case "history":
		if len(args) != 0 {
			return false, usageError("history")
		}
		s.print(renderer.History(s.Tracker.Sales(), s.Currency))
	case "unrealized":
		return false, s.unrealized(args)
	case "json":
		data, err := json.MarshalIndent(s.Tracker.Snapshot(), "", "  ")
		if err != nil {
			return false, fmt.Errorf("encoding position: %w", err)
		}
		fmt.Fprintln(s.Out, string(data))
	case "help":
		doc, err := docs.GetTopic("session")
		if err != nil {
			return false, err
		}
		s.print(doc)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, type help for the list of commands", name)
	}
	return false, nil
}

func (s *Session) buy(args []string) error {
	if len(args) != 2 {
		return usageError("buy <shares> <price>")
	}
	quantity, price, err := parseTrade(args[0], args[1])
	if err != nil {
		return err
	}
	if err := s.Tracker.Buy(quantity, price); err != nil {
		return err
	}
	lots := s.Tracker.Lots()
	lot := lots[len(lots)-1]
	s.Log.Debug("bought", zap.Int("lot", lot.Seq), zap.Stringer("quantity", quantity), zap.Stringer("price", price))
	s.print(renderer.Purchase(lot, s.Currency))
	return nil
}

func (s *Session) sell(args []string) error {
	if len(args) != 2 {
		return usageError("sell <shares> <price>")
	}
	quantity, price, err := parseTrade(args[0], args[1])
	if err != nil {
		return err
	}
	gain, err := s.Tracker.Sell(quantity, price)
	if err != nil {
		return err
	}
	sale, _ := s.Tracker.LastSale()
	s.Log.Debug("sold",
		zap.Int("sale", sale.Seq),
		zap.Stringer("quantity", quantity),
		zap.Stringer("price", price),
		zap.Stringer("gain", gain),
		zap.Int("lots", len(sale.Matches)),
	)
	s.print(renderer.Sale(sale, s.Currency))
	return nil
}

func (s *Session) unrealized(args []string) error {
	if len(args) != 1 {
		return usageError("unrealized <price>")
	}
	price, err := parsePrice(args[0])
	if err != nil {
		return err
	}
	gain, err := s.Tracker.UnrealizedGain(price)
	if err != nil {
		return err
	}
	s.print(renderer.Unrealized(price, gain, s.Currency))
	return nil
}

func (s *Session) print(md string) {
	fmt.Fprint(s.Out, s.Markdown(md))
}

// parseTrade parses the number of shares and the unit price of a trade.
// Signs are checked by the Tracker.
func parseTrade(shares, price string) (fifo.Quantity, fifo.Money, error) {
	q, err := fifo.ParseQuantity(shares)
	if err != nil {
		return 0, fifo.Money{}, fmt.Errorf("invalid quantity %q", shares)
	}
	p, err := parsePrice(price)
	if err != nil {
		return 0, fifo.Money{}, err
	}
	return q, p, nil
}

func parsePrice(s string) (fifo.Money, error) {
	p, err := fifo.ParseMoney(s)
	if err != nil {
		return fifo.Money{}, fmt.Errorf("invalid price %q", s)
	}
	return p, nil
}

func usageError(usage string) error {
	return fmt.Errorf("usage: %s", usage)
}

type sessionCmd struct{}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "buy and sell shares interactively" }
func (*sessionCmd) Usage() string {
	return `fifo session

  Reads commands from the standard input, one per line, until quit.
  Type help for the list of commands.
`
}

func (c *sessionCmd) SetFlags(f *flag.FlagSet) {}

func (c *sessionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "session takes no arguments")
		return subcommands.ExitUsageError
	}
	cfg, logger, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer logger.Sync()

	s := NewSession(os.Stdout, cfg.Currency, logger)
	s.Markdown = markdownRenderer(cfg.Style)
	s.Prompt = "fifo> "
	logger.Debug("session started", zap.String("currency", cfg.Currency))
	fmt.Println("Type help for the list of commands, quit to exit.")
	if err := s.Run(ctx, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
