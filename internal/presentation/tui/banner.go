package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the confcheck banner with the version line.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	color := IsTerminal(w)
	paint := func(text, hex string) string {
		if !color {
			return text
		}
		return termenv.String(text).Foreground(p.Color(hex)).String()
	}

	lines := []struct{ text, color string }{
		{"                 __      _           _   ", "#818cf8"},
		{"  ___ ___  _ _  / _|__| |_  ___ __| |__", "#a78bfa"},
		{" / _/ _ \\| ' \\|  _/ _| ' \\/ -_) _| / /", "#c084fc"},
		{" \\__\\___/|_||_|_| \\__|_||_\\___\\__|_\\_\\", "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, paint(l.text, l.color))
	}
	fmt.Fprintln(w, paint("  version "+version, "#f472b6"))
	fmt.Fprintln(w)
}
