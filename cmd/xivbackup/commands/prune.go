package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

var (
	pruneDest string
	pruneKeep int
)

func init() {
	pruneCmd.Flags().StringVarP(&pruneDest, "dest", "d", "", "backup folder (default: last used or the data directory)")
	pruneCmd.Flags().IntVarP(&pruneKeep, "keep", "k", 0, "number of newest backups to keep (default: retention.keep)")
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old backup archives",
	Long: `Delete every backup archive in the backup folder except the newest ones.

The number kept comes from --keep, or from the retention.keep setting.`,
	Example: `  xivbackup prune
  xivbackup prune --keep 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		keep := current.settings.Retention.Keep
		if cmd.Flags().Changed("keep") {
			keep = pruneKeep
		}
		return runPrune(cmd.OutOrStdout(), current, pruneDest, keep)
	},
}

func runPrune(w io.Writer, a *app, destFlag string, keep int) error {
	if keep < 1 {
		return errors.NewUserError(errors.Newf("--keep must be at least 1, got %d", keep), "")
	}

	dir, err := a.backupDir(destFlag)
	if err != nil {
		return errors.NewUserError(err, "Pass --dest explicitly")
	}

	removed, err := a.engine(false).Prune(dir, keep)
	if err != nil {
		return errors.NewSystemError(err, "Check the permissions of "+dir)
	}

	out := a.out(w)
	p := newPalette(w)
	if len(removed) == 0 {
		p.info(out, a.msg.Tf("prune_nothing", keep))
		return nil
	}
	p.success(out, a.msg.Tf("prune_removed", len(removed)))
	return nil
}
