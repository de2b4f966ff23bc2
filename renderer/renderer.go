// Package renderer formats the fifo tracker results as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/etnz/fifo"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// Purchase renders the confirmation of a purchase.
func Purchase(lot fifo.Lot, currency string) string {
	data := struct{ Lot fifo.Lot }{lot}
	return renderTemplate("purchase", "purchase.md", nil, currency, data)
}

// Sale renders the confirmation of a sale, with the lots it was matched against.
func Sale(sale fifo.Sale, currency string) string {
	partials := map[string]string{
		"sale_matches": "sale_matches.md",
	}
	data := struct{ Sale fifo.Sale }{sale}
	return renderTemplate("sale", "sale.md", partials, currency, data)
}

// Gains renders the total realized gain.
func Gains(total fifo.Money, currency string) string {
	data := struct{ Total fifo.Money }{total}
	return renderTemplate("gains", "gains.md", nil, currency, data)
}

// Position renders the shares held and their lots.
func Position(p fifo.Position, currency string) string {
	partials := map[string]string{
		"position_lots": "position_lots.md",
	}
	data := struct{ Position fifo.Position }{p}
	return renderTemplate("position", "position.md", partials, currency, data)
}

// History renders the list of sales.
func History(sales []fifo.Sale, currency string) string {
	data := struct{ Sales []fifo.Sale }{sales}
	return renderTemplate("history", "history.md", nil, currency, data)
}

// Unrealized renders the paper gain of the shares held at a given price.
func Unrealized(price, gain fifo.Money, currency string) string {
	data := struct{ Price, Gain fifo.Money }{price, gain}
	return renderTemplate("unrealized", "unrealized.md", nil, currency, data)
}

// FormatMoney formats m in currency, rounded to the currency's fraction digits, e.g. "$1,234.50".
// Amounts of any size are formatted exactly.
func FormatMoney(m fifo.Money, currency string) string {
	// to get a never nil currency I need to call the Money constructor
	f := money.New(0, currency).Currency().Formatter()
	minor := m.Decimal().Round(int32(f.Fraction)).Shift(int32(f.Fraction))

	// Same layout as money.Formatter.Format, on the decimal digits so that it does not overflow int64.
	sa := minor.Abs().StringFixed(0)
	if len(sa) <= f.Fraction {
		sa = strings.Repeat("0", f.Fraction-len(sa)+1) + sa
	}
	if f.Thousand != "" {
		for i := len(sa) - f.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + f.Thousand + sa[i:]
		}
	}
	if f.Fraction > 0 {
		sa = sa[:len(sa)-f.Fraction] + f.Decimal + sa[len(sa)-f.Fraction:]
	}
	sa = strings.Replace(f.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", f.Grapheme, 1)
	if minor.IsNegative() {
		sa = "-" + sa
	}
	return sa
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, currency string, data any) string {
	funcs := template.FuncMap{
		"money": func(m fifo.Money) string { return FormatMoney(m, currency) },
	}

	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
