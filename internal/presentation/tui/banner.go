package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the botcmd ASCII banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _           _                      _ ", "#818cf8"},
		{"| |__   ___ | |_ ___ _ __ ___   __| |", "#a78bfa"},
		{"| '_ \\ / _ \\| __/ __| '_ ` _ \\ / _` |", "#c084fc"},
		{"| |_) | (_) | || (__| | | | | | (_| |", "#e879f9"},
		{"|_.__/ \\___/ \\__\\___|_| |_| |_|\\__,_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("v"+version).Faint())
	fmt.Fprintln(w)
}
