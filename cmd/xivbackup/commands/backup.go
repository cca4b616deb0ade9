package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
	"github.com/znzinc01/FFXIV-BackupManager/internal/paths"
)

var (
	backupSource string
	backupDest   string
)

func init() {
	backupCmd.Flags().StringVarP(&backupSource, "source", "s", "", "game data folder (default: last used or detected)")
	backupCmd.Flags().StringVarP(&backupDest, "dest", "d", "", "backup folder (default: last used or the data directory)")
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a backup archive of the game settings",
	Long: `Create a zip archive named FFXIV-Backup-YYYYMMDD-HHMMSS.zip in the backup
folder, containing every file inside the character folders, the client folder
and the log folder of the game data folder.

The folders used are remembered for the next run.`,
	Example: `  # Use the remembered or detected folders
  xivbackup backup

  # Explicit folders
  xivbackup backup --source "~/Documents/My Games/FINAL FANTASY XIV - KOREA" --dest ~/ffxiv-backups

  See Also:
    xivbackup list    - List backups
    xivbackup restore - Restore a backup`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBackup(cmd.OutOrStdout(), cmd.ErrOrStderr(), current, backupSource, backupDest)
	},
}

func runBackup(w, ew io.Writer, a *app, sourceFlag, destFlag string) error {
	source, err := a.gameDataDir(sourceFlag)
	if err != nil {
		return errors.NewUserError(err, "Pass --source explicitly")
	}
	dest, err := a.backupDir(destFlag)
	if err != nil {
		return errors.NewUserError(err, "Pass --dest explicitly")
	}

	// Only the default folder is created on demand; an explicit folder
	// must already exist.
	if destFlag == "" && a.settings.Recent.BackupDestination == "" {
		if err := paths.EnsureDir(dest, 0); err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "creating %s", dest), "")
		}
	}

	a.logger.Info("creating backup", "source", source, "dest", dest)

	p := newPalette(w)
	name, err := a.engine(false).Backup(source, dest)
	outcome := backup.NewOutcome(name, err)
	if !outcome.OK {
		newPalette(ew).failure(ew, a.msg.T("backup_failed"))
		return errors.NewSystemError(err, suggestFor(source, dest, err))
	}

	out := a.out(w)
	p.success(out, a.msg.T("backup_success"))
	p.field(out, a.msg.T("backup_file"), filepath.Join(dest, outcome.Message))

	a.settings.Recent.GameDataDir = source
	a.settings.Recent.BackupDestination = dest
	if err := a.save(); err != nil {
		a.logger.Warn("saving settings failed", "path", a.configPath, "error", err)
		p.warning(ew, a.msg.T("settings_failed"))
	}
	return nil
}

// suggestFor returns a hint for a failed backup or restore.
func suggestFor(source, dest string, err error) string {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "Check that " + source + " and " + dest + " exist"
	case errors.Is(err, os.ErrPermission):
		return "Check the permissions of " + source + " and " + dest
	case backup.KindOf(err) == backup.KindArchive:
		return "The archive is damaged; choose another backup"
	}
	return ""
}
