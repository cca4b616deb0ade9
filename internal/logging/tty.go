package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY returns true if w is a terminal.
// Any writer with an Fd() method is checked.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor returns true if w accepts ANSI colors. NO_COLOR
// (https://no-color.org) and TERM=dumb disable colors.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
