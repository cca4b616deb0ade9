package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/cli/prompt"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

var (
	listDest string
	listJSON bool
)

func init() {
	listCmd.Flags().StringVarP(&listDest, "dest", "d", "", "backup folder (default: last used or the data directory)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List backup archives",
	Long: `List the backup archives in the backup folder, newest first.

Archives that cannot be read are still listed, with "?" as entry count.`,
	Example: `  xivbackup list
  xivbackup list --dest ~/ffxiv-backups --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd.OutOrStdout(), current, listDest, listJSON)
	},
}

func runList(w io.Writer, a *app, destFlag string, asJSON bool) error {
	dir, err := a.backupDir(destFlag)
	if err != nil {
		return errors.NewUserError(err, "Pass --dest explicitly")
	}

	archives, err := a.engine(false).List(dir)
	if err != nil && !errors.Is(err, backup.ErrNoArchivesFound) {
		return errors.NewSystemError(err, "")
	}

	if asJSON {
		if archives == nil {
			archives = []backup.ArchiveInfo{}
		}
		return writeJSON(w, archives)
	}

	p := newPalette(w)
	if len(archives) == 0 {
		p.info(w, a.msg.Tf("no_archives", dir))
		return nil
	}

	p.info(w, a.msg.T("backup_folder")+": "+dir)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
		p.bold.Sprint("NAME"), p.bold.Sprint("CREATED"), p.bold.Sprint("SIZE"), p.bold.Sprint("ENTRIES"))
	for _, info := range archives {
		entries := "?"
		if info.Entries >= 0 {
			entries = strconv.Itoa(info.Entries)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
			p.ok.Sprint(info.Name),
			info.CreatedAt.Format(timeLayout),
			prompt.HumanSize(info.Size),
			entries)
	}
	return tw.Flush()
}
