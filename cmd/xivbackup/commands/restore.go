package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/cli/prompt"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

// restoreOptions holds the restore flags.
type restoreOptions struct {
	archive string
	target  string
	dest    string
	yes     bool
	staged  bool

	// interactive selects the fuzzy finder instead of a numbered list.
	interactive bool
}

var restoreFlags restoreOptions

func init() {
	restoreCmd.Flags().StringVarP(&restoreFlags.target, "target", "t", "", "game data folder to restore into (default: last used or detected)")
	restoreCmd.Flags().StringVarP(&restoreFlags.dest, "dest", "d", "", "backup folder to choose from when no archive is given")
	restoreCmd.Flags().BoolVarP(&restoreFlags.yes, "yes", "y", false, "skip the confirmation prompt")
	restoreCmd.Flags().BoolVar(&restoreFlags.staged, "staged", false, "extract into a staging folder before replacing anything")
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [ARCHIVE]",
	Short: "Restore a backup archive into the game data folder",
	Long: `Restore a backup archive into the game data folder.

The character folders, the client folder and the log folder currently in the
game data folder are deleted first, then the archive is extracted and every
file gets the modification time recorded in the archive. Nothing else in the
game data folder is touched.

Without ARCHIVE, the backups in the backup folder are offered for selection.
Close the game client before restoring.`,
	Example: `  # Choose a backup interactively
  xivbackup restore

  # Restore a specific archive without confirmation
  xivbackup restore ~/ffxiv-backups/FFXIV-Backup-20240102-030405.zip --yes

  # Leave the game folder untouched if the archive turns out damaged
  xivbackup restore --staged

  See Also:
    xivbackup list    - List backups
    xivbackup inspect - Show the contents of a backup`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := restoreFlags
		if len(args) == 1 {
			opts.archive = args[0]
		}
		opts.staged = opts.staged || current.settings.Restore.Staged
		opts.interactive = isTerminal(os.Stdin) && isTerminal(os.Stdout)
		return runRestore(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), current, opts)
	},
}

func runRestore(r io.Reader, w, ew io.Writer, a *app, opts restoreOptions) error {
	target, err := a.gameDataDir(opts.target)
	if err != nil {
		return errors.NewUserError(err, "Pass --target explicitly")
	}

	p := newPalette(w)
	prompter := prompt.NewWithIO(r, w)
	engine := a.engine(opts.staged)

	archivePath := opts.archive
	if archivePath == "" {
		archivePath, err = chooseArchive(w, a, engine, prompter, opts)
		if err != nil {
			if errors.Is(err, prompt.ErrSelectionCancelled) {
				p.warning(a.out(w), a.msg.T("restore_cancelled"))
				return nil
			}
			return err
		}
	} else if archivePath, err = expandArg(archivePath); err != nil {
		return errors.NewUserError(err, "Pass the archive path explicitly")
	}

	if !opts.yes {
		p.field(w, a.msg.T("selected_backup_file"), archivePath)
		p.field(w, a.msg.T("game_data_folder"), target)
		p.warning(w, a.msg.T("restore_warning"))
		if !prompter.Confirm(a.msg.T("restore_confirm")) {
			p.warning(w, a.msg.T("restore_cancelled"))
			return nil
		}
	}

	a.logger.Info("restoring backup", "archive", archivePath, "target", target, "staged", opts.staged)

	status, err := engine.Restore(archivePath, target)
	outcome := backup.NewOutcome(status, err)
	if !outcome.OK {
		newPalette(ew).failure(ew, a.msg.T("restore_failed"))
		return errors.NewSystemError(err, suggestFor(archivePath, target, err))
	}

	p.success(a.out(w), a.msg.T("restore_success"))
	return nil
}

// chooseArchive lists the backup folder and lets the user pick one.
func chooseArchive(w io.Writer, a *app, engine *backup.Engine, prompter *prompt.Prompter, opts restoreOptions) (string, error) {
	dir, err := a.backupDir(opts.dest)
	if err != nil {
		return "", errors.NewUserError(err, "Pass --dest explicitly")
	}

	archives, err := engine.List(dir)
	if err != nil {
		if errors.Is(err, backup.ErrNoArchivesFound) {
			return "", errors.NewUserError(
				errors.Mark(errors.New(a.msg.Tf("no_archives", dir)), errors.ErrNotFound),
				"Create one with: xivbackup backup",
			)
		}
		return "", errors.NewSystemError(err, "")
	}

	title := a.msg.T("choose_backup_file")
	var picked *backup.ArchiveInfo
	if opts.interactive {
		picked, err = prompt.FuzzySelectArchive(title, archives, previewArchive(engine))
	} else {
		picked, err = prompter.SelectArchive(title, archives)
	}
	if err != nil {
		if errors.Is(err, prompt.ErrInvalidSelection) {
			return "", errors.NewUserError(err, "Enter one of the listed numbers")
		}
		return "", err
	}

	a.logger.Debug("archive selected", "archive", picked.Path)
	fmt.Fprintln(a.out(w))
	return picked.Path, nil
}

// previewArchive renders the entries of an archive for the fuzzy finder.
func previewArchive(engine *backup.Engine) func(backup.ArchiveInfo) string {
	return func(info backup.ArchiveInfo) string {
		entries, err := engine.Inspect(info.Path)
		if err != nil {
			return err.Error()
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s\n%d entries, %s\n\n", info.Name, len(entries), prompt.HumanSize(info.Size))
		for _, e := range entries {
			fmt.Fprintf(&b, "%s  %s\n", e.Modified.Format("2006-01-02 15:04"), e.Name)
		}
		return b.String()
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
