package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

var inspectJSON bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect ARCHIVE",
	Short: "Show the entries of a backup archive",
	Long: `Show every entry of a backup archive with its size and the modification
time that a restore will apply.`,
	Example: `  xivbackup inspect ~/ffxiv-backups/FFXIV-Backup-20240102-030405.zip`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd.OutOrStdout(), current, args[0], inspectJSON)
	},
}

func runInspect(w io.Writer, a *app, archive string, asJSON bool) error {
	path, err := expandArg(archive)
	if err != nil {
		return errors.NewUserError(err, "Pass the archive path explicitly")
	}

	entries, err := a.engine(false).Inspect(path)
	if err != nil {
		return errors.NewSystemError(err, suggestFor(path, path, err))
	}

	if asJSON {
		if entries == nil {
			entries = []backup.EntryInfo{}
		}
		return writeJSON(w, entries)
	}

	p := newPalette(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", p.bold.Sprint("MODIFIED"), p.bold.Sprint("SIZE"), p.bold.Sprint("NAME"))
	for _, e := range entries {
		size := fmt.Sprint(e.Size)
		if e.Dir {
			size = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Modified.Format(timeLayout), size, e.Name)
	}
	return tw.Flush()
}
