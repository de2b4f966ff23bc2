package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/etnz/fifo"
	"github.com/etnz/fifo/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Menu is a guided session: it asks for every value separately until it is valid.
type Menu struct {
	Tracker  *fifo.Tracker
	Currency string
	Out      io.Writer
	Markdown func(string) string
	Log      *zap.Logger

	words *bufio.Scanner
}

// NewMenu returns a Menu on a new Tracker, printing plain markdown to out.
func NewMenu(out io.Writer, currency string, logger *zap.Logger) *Menu {
	return &Menu{
		Tracker:  fifo.NewTracker(),
		Currency: currency,
		Out:      out,
		Markdown: func(md string) string { return md },
		Log:      logger,
	}
}

// Run shows the main menu and executes the user choices read from in, until the user quits or the input ends.
func (m *Menu) Run(ctx context.Context, in io.Reader) error {
	m.words = bufio.NewScanner(in)
	m.words.Split(bufio.ScanWords)

	fmt.Fprintln(m.Out, "Welcome to the FIFO share tracker!")
	fmt.Fprintln(m.Out, "==================================")
	fmt.Fprintln(m.Out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.showMenu()
		choice, ok := m.readChoice()
		if !ok {
			return m.words.Err()
		}

		var more bool
		switch choice {
		case 1:
			more = m.buy()
		case 2:
			more = m.sell()
		case 3:
			m.gains()
			more = true
		case 4:
			fmt.Fprintln(m.Out, "\nThank you for using the FIFO share tracker!")
			return nil
		default:
			fmt.Fprintln(m.Out, "\nInvalid choice. Please select 1-4.")
			more = true
		}
		if !more {
			return m.words.Err()
		}
		fmt.Fprintln(m.Out)
	}
}

func (m *Menu) showMenu() {
	fmt.Fprintln(m.Out, "Main Menu:")
	fmt.Fprintln(m.Out, "1. Buy shares")
	fmt.Fprintln(m.Out, "2. Sell shares")
	fmt.Fprintln(m.Out, "3. Display total realized capital gain")
	fmt.Fprintln(m.Out, "4. Quit")
	fmt.Fprint(m.Out, "\nEnter your choice: ")
}

// buy returns false if the input ended.
func (m *Menu) buy() bool {
	fmt.Fprintln(m.Out, "\n--- Buy Shares ---")

	fmt.Fprint(m.Out, "Enter number of shares to buy: ")
	quantity, ok := m.readQuantity()
	if !ok {
		return false
	}
	fmt.Fprint(m.Out, "Enter price per share: $")
	price, ok := m.readPrice()
	if !ok {
		return false
	}

	if err := m.Tracker.Buy(quantity, price); err != nil {
		fmt.Fprintf(m.Out, "\nError: %v\n", err)
		return true
	}
	lots := m.Tracker.Lots()
	m.Log.Debug("bought", zap.Stringer("quantity", quantity), zap.Stringer("price", price))
	fmt.Fprintln(m.Out)
	m.print(renderer.Purchase(lots[len(lots)-1], m.Currency))
	return true
}

// sell returns false if the input ended.
func (m *Menu) sell() bool {
	fmt.Fprintln(m.Out, "\n--- Sell Shares ---")

	if m.Tracker.IsEmpty() {
		fmt.Fprintln(m.Out, "You don't own any shares to sell.")
		return true
	}
	fmt.Fprintf(m.Out, "You currently own %v shares.\n", m.Tracker.CurrentQuantity())

	fmt.Fprint(m.Out, "Enter number of shares to sell: ")
	quantity, ok := m.readQuantity()
	if !ok {
		return false
	}
	fmt.Fprint(m.Out, "Enter selling price per share: $")
	price, ok := m.readPrice()
	if !ok {
		return false
	}

	gain, err := m.Tracker.Sell(quantity, price)
	if err != nil {
		m.Log.Debug("sale rejected", zap.Error(err))
		fmt.Fprintf(m.Out, "\nError: %v\n", err)
		return true
	}
	sale, _ := m.Tracker.LastSale()
	m.Log.Debug("sold", zap.Stringer("quantity", quantity), zap.Stringer("price", price), zap.Stringer("gain", gain))
	fmt.Fprintln(m.Out)
	m.print(renderer.Sale(sale, m.Currency))
	return true
}

func (m *Menu) gains() {
	fmt.Fprintln(m.Out, "\n--- Total Realized Capital Gain ---")
	m.print(renderer.Gains(m.Tracker.TotalRealizedGain(), m.Currency))
}

func (m *Menu) print(md string) {
	fmt.Fprint(m.Out, m.Markdown(md))
}

// readChoice reads words until one is a number.
func (m *Menu) readChoice() (int, bool) {
	for m.words.Scan() {
		choice, err := strconv.Atoi(m.words.Text())
		if err == nil {
			return choice, true
		}
		fmt.Fprint(m.Out, "Invalid input. Please enter a number (1-4): ")
	}
	return 0, false
}

// readQuantity reads words until one is a positive number of shares.
func (m *Menu) readQuantity() (fifo.Quantity, bool) {
	for m.words.Scan() {
		q, err := fifo.ParseQuantity(m.words.Text())
		switch {
		case err != nil:
			fmt.Fprint(m.Out, "Invalid input. Please enter a positive number: ")
		case !q.IsPositive():
			fmt.Fprint(m.Out, "Please enter a positive number: ")
		default:
			return q, true
		}
	}
	return 0, false
}

// readPrice reads words until one is a positive price.
func (m *Menu) readPrice() (fifo.Money, bool) {
	for m.words.Scan() {
		p, err := fifo.ParseMoney(m.words.Text())
		switch {
		case err != nil:
			fmt.Fprint(m.Out, "Invalid input. Please enter a positive number: ")
		case !p.IsPositive():
			fmt.Fprint(m.Out, "Please enter a positive number: ")
		default:
			return p, true
		}
	}
	return fifo.Money{}, false
}

type menuCmd struct{}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "buy and sell shares from a guided menu" }
func (*menuCmd) Usage() string {
	return `fifo menu

  Shows a menu to buy shares, sell shares, and display the total realized capital gain.
`
}

func (c *menuCmd) SetFlags(f *flag.FlagSet) {}

func (c *menuCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "menu takes no arguments")
		return subcommands.ExitUsageError
	}
	cfg, logger, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer logger.Sync()

	m := NewMenu(os.Stdout, cfg.Currency, logger)
	m.Markdown = markdownRenderer(cfg.Style)
	if err := m.Run(ctx, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
