package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/znzinc01/FFXIV-BackupManager/internal/cli/prompt"
	"github.com/znzinc01/FFXIV-BackupManager/internal/config"
	"github.com/znzinc01/FFXIV-BackupManager/internal/editor"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
	"github.com/znzinc01/FFXIV-BackupManager/internal/locale"
	"github.com/znzinc01/FFXIV-BackupManager/internal/paths"
)

var configResetYes bool

func init() {
	configResetCmd.Flags().BoolVarP(&configResetYes, "yes", "y", false, "skip the confirmation prompt")
	configCmd.AddCommand(configShowCmd, configEditCmd, configSetLocaleCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change xivbackup settings",
	Long: `Show or change the settings stored in <config dir>/xivbackup/config.yaml.

Every setting can also be overridden from the environment with the XIVBACKUP_
prefix, for example XIVBACKUP_RETENTION_KEEP=10.`,
	Example: `  xivbackup config show
  xivbackup config edit
  xivbackup config set-locale ko_KR
  xivbackup config reset`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShow(cmd.OutOrStdout(), current)
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the settings file in your editor",
	Long: `Open the settings file in $EDITOR (falling back to $VISUAL, nano, vi) and
validate it after the editor exits. A missing file is created with defaults
first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		l := editor.Launcher{Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
		return runConfigEdit(cmd.OutOrStdout(), l, config.ResolvePath(configFlag))
	},
}

var configSetLocaleCmd = &cobra.Command{
	Use:   "set-locale LOCALE",
	Short: "Set the display language",
	Long: `Set the display language. An empty string ("") detects the language from
LANG/LC_ALL. Additional languages can be added as TOML files in the locales
folder next to the settings file.`,
	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		if current == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return current.locales.Names(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSetLocale(cmd.OutOrStdout(), current, args[0])
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all settings to their defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigReset(cmd.InOrStdin(), cmd.OutOrStdout(), config.ResolvePath(configFlag), configResetYes)
	},
}

func runConfigShow(w io.Writer, a *app) error {
	data, err := yaml.Marshal(a.settings)
	if err != nil {
		return errors.Wrap(err, "marshaling settings")
	}

	p := newPalette(w)
	p.info(w, "# "+a.configPath)
	fmt.Fprint(w, string(data))
	fmt.Fprintln(w)
	p.info(w, "# locale: "+a.msg.Name()+" ("+a.msg.Language()+")")
	p.info(w, "# available: "+strings.Join(a.locales.Names(), ", "))
	p.info(w, "# locales folder: "+paths.LocalesDir())
	return nil
}

func runConfigSetLocale(w io.Writer, a *app, name string) error {
	normalized := locale.Normalize(name)
	if normalized != "" && !a.locales.Has(normalized) {
		err := errors.New(a.msg.Tf("locale_unknown", name, strings.Join(a.locales.Names(), ", ")))
		return errors.NewUserError(err, "Add a catalog to "+paths.LocalesDir()+" or pick a listed language")
	}

	a.settings.General.Locale = normalized
	if err := a.save(); err != nil {
		return errors.NewSystemError(err, a.msg.T("settings_failed"))
	}

	a.msg = a.locales.Catalog(locale.Resolve(normalized))
	display := normalized
	if display == "" {
		display = a.msg.Name()
	}
	newPalette(w).success(a.out(w), a.msg.Tf("locale_set", display))
	return nil
}

// fileEditor opens a file for interactive editing.
type fileEditor interface {
	Open(path string) error
}

// runConfigEdit works without loaded settings so that a broken file can
// be repaired.
func runConfigEdit(w io.Writer, ed fileEditor, path string) error {
	p := newPalette(w)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(path, config.Default()); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	p.field(w, "path", path)
	if err := ed.Open(path); err != nil {
		return errors.NewUserError(err, "Set $EDITOR to your editor, for example: export EDITOR=nano")
	}

	config.Init()
	if _, err := config.Load(path); err != nil {
		p.failure(w, "settings are invalid")
		return errors.NewUserError(err, "Run: xivbackup config edit, or xivbackup config reset")
	}
	p.success(w, "settings are valid")
	return nil
}

// runConfigReset works without loaded settings so that a broken file can
// be replaced. Messages use the detected locale.
func runConfigReset(r io.Reader, w io.Writer, path string, yes bool) error {
	msg, err := resetCatalog()
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	p := newPalette(w)

	if !yes {
		p.warning(w, msg.T("reset_warning"))
		if !prompt.NewWithIO(r, w).Confirm(msg.T("restore_confirm")) {
			return nil
		}
	}

	if _, err := config.Reset(path); err != nil {
		return errors.NewSystemError(err, msg.T("reset_failed"))
	}

	p.success(w, msg.T("reset_success"))
	p.field(w, "path", path)
	return nil
}

// resetCatalog returns the catalog for the detected locale. A broken
// locales folder falls back to the built-in catalogs.
func resetCatalog() (*locale.Catalog, error) {
	locales, err := locale.NewRegistry(paths.LocalesDir())
	if err != nil {
		slog.Warn("ignoring user locale catalogs", "dir", paths.LocalesDir(), "error", err)
		locales, err = locale.NewRegistry("")
		if err != nil {
			return nil, errors.Wrap(err, "loading built-in locale catalogs")
		}
	}
	return locales.Catalog(locale.Detect()), nil
}
