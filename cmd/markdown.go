package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

const wordWrap = 100

// markdownRenderer returns a function that renders markdown for the terminal in the given style.
// The "raw" style leaves the markdown untouched.
func markdownRenderer(style string) func(string) string {
	if style == "raw" {
		return func(md string) string { return md }
	}

	styleOption := glamour.WithStandardStyle(style)
	if style == "auto" {
		styleOption = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(wordWrap))
	if err != nil {
		return func(md string) string { return md }
	}
	return func(md string) string {
		out, err := r.Render(md)
		if err != nil {
			return md
		}
		return out
	}
}

// printMarkdown renders md in style and prints it to w.
func printMarkdown(w io.Writer, style, md string) {
	fmt.Fprint(w, markdownRenderer(style)(md))
}
