package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/znzinc01/FFXIV-BackupManager/internal/logging"
)

// palette colors status lines when the writer is a color terminal.
type palette struct {
	ok, fail, warn, note, bold *color.Color
}

func newPalette(w io.Writer) palette {
	p := palette{
		ok:   color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow),
		note: color.New(color.FgCyan),
		bold: color.New(color.Bold),
	}
	enabled := logging.SupportsColor(w)
	for _, c := range []*color.Color{p.ok, p.fail, p.warn, p.note, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) success(w io.Writer, msg string) { fmt.Fprintln(w, p.ok.Sprint("✓ ")+msg) }

func (p palette) failure(w io.Writer, msg string) { fmt.Fprintln(w, p.fail.Sprint("✗ ")+msg) }

func (p palette) warning(w io.Writer, msg string) { fmt.Fprintln(w, p.warn.Sprint(msg)) }

func (p palette) info(w io.Writer, msg string) { fmt.Fprintln(w, p.note.Sprint(msg)) }

// field prints an indented "label: value" line.
func (p palette) field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s: %s\n", p.bold.Sprint(label), value)
}
