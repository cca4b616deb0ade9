// Package commands implements the CLI commands for xivbackup.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/znzinc01/FFXIV-BackupManager/cmd"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
	"github.com/znzinc01/FFXIV-BackupManager/internal/logging"
	"github.com/znzinc01/FFXIV-BackupManager/internal/paths"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFlag holds the value of the --config flag.
var configFlag string

const (
	logFileMaxSize    = 5 // megabytes
	logFileMaxBackups = 3
)

// logFileHandle is the open --log-file, closed after the command ran.
var logFileHandle io.Closer

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"settings file (default: <config dir>/xivbackup/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("xivbackup version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "xivbackup",
	Short: "Back up and restore FINAL FANTASY XIV client settings",
	Long: `xivbackup archives the character settings, client folder and logs of the
FINAL FANTASY XIV game client into timestamped zip files, and restores them
with their original modification times.

Only character folders (FFXIV_CHR followed by 16 characters), the
"FINAL FANTASY XIV - KOREA" folder and the "log" folder are touched.`,
	Example: `  # Back up the detected game folder into the default backup folder
  xivbackup backup

  # Restore a backup, choosing it interactively
  xivbackup restore

  # Keep only the three newest backups
  xivbackup prune --keep 3

  See Also: xivbackup list, xivbackup config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if skipsSettings(cmd) {
			return nil
		}
		return loadApp(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logFileHandle != nil {
			logFileHandle.Close()
			logFileHandle = nil
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// skipsSettings reports whether cmd runs without loading settings.
func skipsSettings(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion", "doctor", "gen-doc":
		return true
	}
	// config reset and edit must work on a broken settings file.
	if cmd.Parent() == nil || cmd.Parent().Name() != "config" {
		return false
	}
	return cmd.Name() == "reset" || cmd.Name() == "edit"
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass only one of -q and -v")
	}

	format := logging.Format(logFormat)
	if format != logging.FormatText && format != logging.FormatJSON {
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat), "Use --log-format text or --log-format json")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("XIVBACKUP_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{logging.NewFormatHandler(cmd.ErrOrStderr(), format, opts)}

	if logFile != "" {
		if err := paths.EnsureDir(filepath.Dir(logFile), 0); err != nil {
			return errors.NewUserError(errors.Wrapf(err, "opening log file %s", logFile), "Check the --log-file path")
		}
		// Rotated after logFileMaxSize megabytes; file output uses JSON format.
		f := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    logFileMaxSize,
			MaxBackups: logFileMaxBackups,
			Compress:   true,
		}
		logFileHandle = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
