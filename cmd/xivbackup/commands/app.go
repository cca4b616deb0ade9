package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/config"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
	"github.com/znzinc01/FFXIV-BackupManager/internal/locale"
	"github.com/znzinc01/FFXIV-BackupManager/internal/logging"
	"github.com/znzinc01/FFXIV-BackupManager/internal/paths"
	"github.com/znzinc01/FFXIV-BackupManager/internal/selector"
)

// app is the state shared by every command once settings are loaded.
type app struct {
	settings   *config.Settings
	configPath string
	locales    *locale.Registry
	msg        *locale.Catalog
	logger     *slog.Logger
	quiet      bool
}

// current is set by the root command before a subcommand runs.
var current *app

// loadApp reads settings and locale catalogs, then shows the first-run
// help once.
func loadApp(cmd *cobra.Command) error {
	config.Init()
	settings, err := config.Load(configFlag)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewUserError(err, "Check the --config path")
		}
		return errors.NewConfigError(err)
	}

	locales, err := locale.NewRegistry(paths.LocalesDir())
	if err != nil {
		return errors.NewUserError(err, "Fix or remove the file in "+paths.LocalesDir())
	}

	a := &app{
		settings:   settings,
		configPath: config.ResolvePath(configFlag),
		locales:    locales,
		logger:     logging.FromContext(cmd.Context()),
		quiet:      quiet,
	}
	a.msg = locales.Catalog(locale.Resolve(settings.General.Locale))
	current = a

	return a.showFirstRun(cmd.OutOrStdout())
}

// showFirstRun prints the welcome text on the very first invocation and
// records that it was shown.
func (a *app) showFirstRun(w io.Writer) error {
	if !a.settings.General.FirstRun {
		return nil
	}
	if !a.quiet {
		newPalette(w).info(w, a.msg.T("first_run_help")+"\n")
	}
	a.settings.General.FirstRun = false
	if err := a.save(); err != nil {
		// Not fatal; the message shows again next time.
		a.logger.Warn("saving settings failed", "path", a.configPath, "error", err)
	}
	return nil
}

// save persists the settings to the file they were loaded from.
func (a *app) save() error {
	return config.Save(a.configPath, a.settings)
}

// engine returns an archive engine configured from the settings.
func (a *app) engine(staged bool) *backup.Engine {
	return backup.NewEngine(
		backup.WithSelector(selector.New(a.settings.Selector.ExtraNames...)),
		backup.WithLogger(a.logger),
		backup.WithStagedRestore(staged),
	)
}

// backupDir resolves the backup folder: flag, then last used, then the
// default data directory.
func (a *app) backupDir(flag string) (string, error) {
	dir := flag
	if dir == "" {
		dir = a.settings.Recent.BackupDestination
	}
	if dir == "" {
		return paths.DefaultBackupDir(), nil
	}
	return paths.ExpandHome(dir)
}

// gameDataDir resolves the game data folder: flag, then last used, then
// the detected client folder.
func (a *app) gameDataDir(flag string) (string, error) {
	dir := flag
	if dir == "" {
		dir = a.settings.Recent.GameDataDir
	}
	if dir == "" {
		return paths.DefaultGameDataDir(paths.DocumentsDir()), nil
	}
	return paths.ExpandHome(dir)
}

// out returns w, or io.Discard in quiet mode.
func (a *app) out(w io.Writer) io.Writer {
	if a.quiet {
		return io.Discard
	}
	return w
}
