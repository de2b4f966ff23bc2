package renderer

import (
	"strings"
	"testing"

	"github.com/Rhymond/go-money"
	"github.com/etnz/fifo"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// tables parses md and returns the cells of every table, rows first, header row included.
func tables(t *testing.T, md string) [][][]string {
	t.Helper()

	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var result [][][]string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		table, ok := n.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		var rows [][]string
		for row := table.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, nodeText(cell, src))
			}
			rows = append(rows, cells)
		}
		result = append(result, rows)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		t.Fatalf("failed to walk markdown: %v", err)
	}
	return result
}

// nodeText concatenates all the text segments below n.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if txt, ok := n.(*ast.Text); ok && entering {
			b.Write(txt.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func newTracker(t *testing.T) *fifo.Tracker {
	t.Helper()
	tr := fifo.NewTracker()
	if err := tr.Buy(fifo.Q(10), fifo.M(5)); err != nil {
		t.Fatal(err)
	}
	if err := tr.Buy(fifo.Q(10), fifo.M(8)); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Sell(fifo.Q(15), fifo.M(10)); err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestFormatMoney(t *testing.T) {
	testCases := []struct {
		m    fifo.Money
		want string
	}{
		{fifo.M(1234.5), "$1,234.50"},
		{fifo.M(0), "$0.00"},
		{fifo.M(-10), "-$10.00"},
		{fifo.M(0.125), "$0.13"},
		{fifo.M(-0.004), "$0.00"},
		{fifo.M(123), "$123.00"},
		{mustParseMoney(t, "100000000000000000"), "$100,000,000,000,000,000.00"},
		{mustParseMoney(t, "-92233720368547758070.5"), "-$92,233,720,368,547,758,070.50"},
	}
	for _, tc := range testCases {
		if got := FormatMoney(tc.m, "USD"); got != tc.want {
			t.Errorf("FormatMoney(%v, USD) = %q, want %q", tc.m, got, tc.want)
		}
	}
}

func TestFormatMoney_Currencies(t *testing.T) {
	testCases := []struct {
		m        fifo.Money
		currency string
		want     string
	}{
		{fifo.M(1234.5), "EUR", "1.234,50 €"},
		{fifo.M(1234.5), "JPY", "¥1,235"},
		{mustParseMoney(t, "100000000000000000"), "JPY", "¥100,000,000,000,000,000"},
	}
	for _, tc := range testCases {
		// go-money is the reference for amounts it can represent.
		if tc.m.Decimal().Abs().LessThan(decimal.NewFromInt(1e12)) {
			frac := int32(money.GetCurrency(tc.currency).Fraction)
			want := money.New(tc.m.Decimal().Round(frac).Shift(frac).IntPart(), tc.currency).Display()
			if got := FormatMoney(tc.m, tc.currency); got != want {
				t.Errorf("FormatMoney(%v, %s) = %q, go-money displays %q", tc.m, tc.currency, got, want)
			}
		}
		if got := FormatMoney(tc.m, tc.currency); got != tc.want {
			t.Errorf("FormatMoney(%v, %s) = %q, want %q", tc.m, tc.currency, got, tc.want)
		}
	}
}

func TestPurchase_LargeAmount(t *testing.T) {
	lot := fifo.Lot{Seq: 1, Quantity: fifo.Q(int64(1e15)), UnitCost: fifo.M(1000)}
	md := Purchase(lot, "USD")
	if want := "Total cost: $1,000,000,000,000,000,000.00"; !strings.Contains(md, want) {
		t.Errorf("Purchase() = %q, want it to contain %q", md, want)
	}
}

func mustParseMoney(t *testing.T, s string) fifo.Money {
	t.Helper()
	m, err := fifo.ParseMoney(s)
	if err != nil {
		t.Fatalf("ParseMoney(%q) error: %v", s, err)
	}
	return m
}

func TestPurchase(t *testing.T) {
	md := Purchase(fifo.Lot{Seq: 1, Quantity: 10, UnitCost: fifo.M(5)}, "USD")
	for _, want := range []string{
		"Purchase confirmed: 10 shares at $5.00 per share",
		"Total cost: $50.00",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Purchase() = %q, want it to contain %q", md, want)
		}
	}
}

func TestSale(t *testing.T) {
	sale, _ := newTracker(t).LastSale()
	md := Sale(sale, "USD")

	for _, want := range []string{
		"Sale confirmed: 15 shares at $10.00 per share",
		"Total revenue: $150.00",
		"Capital gain from this sale: $60.00",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Sale() = %q, want it to contain %q", md, want)
		}
	}

	want := [][][]string{{
		{"Lot", "Shares", "Unit Cost", "Gain"},
		{"#1", "10", "$5.00", "$50.00"},
		{"#2", "5", "$8.00", "$10.00"},
	}}
	if diff := cmp.Diff(want, tables(t, md)); diff != "" {
		t.Errorf("Sale() tables mismatch (-want +got):\n%s", diff)
	}
}

func TestGains(t *testing.T) {
	testCases := []struct {
		name  string
		total fifo.Money
		want  string
	}{
		{"gain", fifo.M(60), "You have a net capital GAIN."},
		{"loss", fifo.M(-1.5), "You have a net capital LOSS."},
		{"zero", fifo.M(0), "You have no capital gain or loss yet."},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			md := Gains(tc.total, "USD")
			if !strings.Contains(md, tc.want) {
				t.Errorf("Gains(%v) = %q, want it to contain %q", tc.total, md, tc.want)
			}
			if want := "Total realized capital gain: " + FormatMoney(tc.total, "USD"); !strings.Contains(md, want) {
				t.Errorf("Gains(%v) = %q, want it to contain %q", tc.total, md, want)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	md := Position(newTracker(t).Snapshot(), "USD")

	want := [][][]string{
		{
			{"Shares", "Cost Basis", "Realized Gain"},
			{"5", "$40.00", "$60.00"},
		},
		{
			{"Lot", "Shares", "Unit Cost", "Cost"},
			{"#2", "5", "$8.00", "$40.00"},
		},
	}
	if diff := cmp.Diff(want, tables(t, md)); diff != "" {
		t.Errorf("Position() tables mismatch (-want +got):\n%s", diff)
	}
}

func TestPosition_Empty(t *testing.T) {
	md := Position(fifo.NewTracker().Snapshot(), "USD")
	if !strings.Contains(md, "No shares held.") {
		t.Errorf("Position() = %q, want it to contain %q", md, "No shares held.")
	}
	if got := len(tables(t, md)); got != 1 {
		t.Errorf("Position() has %d tables, want 1", got)
	}
}

func TestHistory(t *testing.T) {
	md := History(newTracker(t).Sales(), "USD")
	want := [][][]string{{
		{"Sale", "Shares", "Unit Price", "Revenue", "Cost", "Gain"},
		{"#1", "15", "$10.00", "$150.00", "$90.00", "$60.00"},
	}}
	if diff := cmp.Diff(want, tables(t, md)); diff != "" {
		t.Errorf("History() tables mismatch (-want +got):\n%s", diff)
	}

	if md := History(nil, "USD"); !strings.Contains(md, "No sales yet.") {
		t.Errorf("History(nil) = %q, want it to contain %q", md, "No sales yet.")
	}
}

func TestUnrealized(t *testing.T) {
	md := Unrealized(fifo.M(7), fifo.M(-6), "USD")
	if want := "Unrealized capital gain at $7.00 per share: -$6.00"; !strings.Contains(md, want) {
		t.Errorf("Unrealized() = %q, want it to contain %q", md, want)
	}
}
