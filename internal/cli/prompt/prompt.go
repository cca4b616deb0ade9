// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

// Sentinel errors for archive selection.
var (
	ErrNoArchives         = errors.New("no archives to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Prompter reads answers from a single buffered reader so that several
// prompts can share one input stream.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// New creates a Prompter using stdin and stdout.
func New() *Prompter {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO creates a Prompter with custom reader and writer for testing.
func NewWithIO(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Confirm prompts for a yes/no answer.
// Returns true only if the user enters "y" or "yes" (case-insensitive).
func (p *Prompter) Confirm(question string) bool {
	fmt.Fprintf(p.writer, "%s [y/N]: ", question)

	response, err := p.readLine()
	if err != nil && response == "" {
		return false
	}

	response = strings.ToLower(response)
	return response == "y" || response == "yes"
}

// SelectArchive prompts the user to choose from a numbered list of archives.
//
// Returns:
//   - ErrNoArchives if the list is empty
//   - The archive if only one exists (auto-selects without prompting)
//   - The selected archive; an empty answer picks the first (newest) one
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (p *Prompter) SelectArchive(title string, archives []backup.ArchiveInfo) (*backup.ArchiveInfo, error) {
	if len(archives) == 0 {
		return nil, ErrNoArchives
	}

	if len(archives) == 1 {
		return &archives[0], nil
	}

	fmt.Fprintf(p.writer, "%s:\n", title)
	for i, a := range archives {
		fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, Label(a))
	}
	fmt.Fprintf(p.writer, "Select [1]: ")

	input, err := p.readLine()
	if err != nil && input == "" {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	if input == "" {
		return &archives[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	if selection < 1 || selection > len(archives) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(archives))
	}

	return &archives[selection-1], nil
}

// readLine returns the next line without surrounding whitespace. A final
// line without a newline is returned together with io.EOF.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	return strings.TrimSpace(line), err
}

// Label renders an archive as a single list line.
func Label(a backup.ArchiveInfo) string {
	return fmt.Sprintf("%s  (%s, %s)", a.Name, a.CreatedAt.Format("2006-01-02 15:04:05"), HumanSize(a.Size))
}

// HumanSize formats a byte count with a binary unit suffix.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
