// Package editor launches the user's text editor on a file.
package editor

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

// Launcher runs an editor with the given standard streams.
type Launcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Open runs the editor on path and waits for it to exit.
// $EDITOR and $VISUAL may carry arguments, for example "code --wait".
func (l Launcher) Open(path string) error {
	args := strings.Fields(Command())

	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", args[0])
	}
	return nil
}

// Command returns the editor command line: $EDITOR, then $VISUAL, then
// nano if installed, then vi.
func Command() string {
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	if visual := strings.TrimSpace(os.Getenv("VISUAL")); visual != "" {
		return visual
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
