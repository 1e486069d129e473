package render

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Style is the table of escape sequences the renderer wraps text in. A
// Style is a plain value; copies never affect each other.
type Style struct {
	Reset string
	Bold  string

	Yellow string
	Cyan   string
	White  string

	BoldRed    string
	BoldBlue   string
	BoldYellow string
	BoldGreen  string
	BoldCyan   string
}

// ANSIStyle returns the colored style.
func ANSIStyle() Style {
	return Style{
		Reset: "\033[0m",
		Bold:  "\033[1m",

		Yellow: "\033[33m",
		Cyan:   "\033[36m",
		White:  "\033[37m",

		BoldRed:    "\033[1;31m",
		BoldBlue:   "\033[1;34m",
		BoldYellow: "\033[1;33m",
		BoldGreen:  "\033[1;32m",
		BoldCyan:   "\033[1;36m",
	}
}

// PlainStyle returns a style without any escape sequences.
func PlainStyle() Style {
	return Style{}
}

// Colored reports whether s emits escape sequences.
func (s Style) Colored() bool {
	return s.Reset != ""
}

// StyleFor picks ANSIStyle when w is a terminal and color is not disabled.
func StyleFor(w io.Writer, noColor bool) Style {
	if noColor {
		return PlainStyle()
	}

	f, ok := w.(*os.File)
	if !ok {
		return PlainStyle()
	}

	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return ANSIStyle()
	}
	return PlainStyle()
}
