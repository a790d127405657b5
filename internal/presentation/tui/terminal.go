package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f any) bool {
	file, ok := f.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// ErrorStyle colours error text for w. Writers that are not terminals
// get the text unchanged.
func ErrorStyle(w io.Writer) func(string) string {
	if !IsTerminal(w) {
		return func(s string) string { return s }
	}
	p := termenv.ColorProfile()
	return func(s string) string {
		return termenv.String(s).Foreground(p.Color("#fb7185")).String()
	}
}
