package commands

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/znzinc01/FFXIV-BackupManager/internal/config"
	"github.com/znzinc01/FFXIV-BackupManager/internal/doctor"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
	"github.com/znzinc01/FFXIV-BackupManager/internal/logging"
	"github.com/znzinc01/FFXIV-BackupManager/internal/selector"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false, "show passed checks too")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "repair fixable issues")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose settings and backups",
	Long: `Check the settings file, the game data folder, the backup folder and
the integrity of every archive in it.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  xivbackup doctor
  xivbackup doctor --fix
  xivbackup doctor --json`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if doctorJSON && doctorAll {
			return errors.NewUserError(errors.New("flags --json and --all are mutually exclusive"), "")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctor(cmd.OutOrStdout(), logging.FromContext(cmd.Context()), doctorOptions{
			configPath: config.ResolvePath(configFlag),
			asJSON:     doctorJSON,
			all:        doctorAll,
			fix:        doctorFix,
		})
	},
}

// errDoctorWarnings and errDoctorErrors carry the doctor exit codes.
var (
	errDoctorWarnings = errors.New("doctor found warnings")
	errDoctorErrors   = errors.New("doctor found errors")
)

type doctorOptions struct {
	configPath string
	asJSON     bool
	all        bool
	fix        bool
}

// doctorRunner registers the checks for the paths the other commands
// would use. Settings that fail to load fall back to defaults so the
// remaining checks still run.
func doctorRunner(settingsPath string, logger *slog.Logger) (*doctor.Runner, error) {
	config.Init()
	settings, err := config.Load(settingsPath)
	if err != nil {
		logger.Debug("using default settings", "path", settingsPath, "error", err)
		settings = config.Default()
	}

	a := &app{settings: settings, configPath: settingsPath, logger: logger}
	gameDir, err := a.gameDataDir("")
	if err != nil {
		return nil, err
	}
	backupDir, err := a.backupDir("")
	if err != nil {
		return nil, err
	}
	engine := a.engine(false)

	r := doctor.NewRunner()
	r.AddCheck(doctor.NewSettingsCheck(settingsPath))
	r.AddCheck(doctor.NewGameDataCheck(gameDir, selector.New(settings.Selector.ExtraNames...)))
	r.AddCheck(doctor.NewBackupDirCheck(backupDir, engine))
	r.AddCheck(doctor.NewArchiveCheck(backupDir, engine))
	return r, nil
}

func runDoctor(w io.Writer, logger *slog.Logger, opts doctorOptions) error {
	runner, err := doctorRunner(opts.configPath, logger)
	if err != nil {
		return errors.NewUserError(err, "Check the paths in "+opts.configPath)
	}

	report := runner.Run()
	if opts.fix {
		fixes := runner.Fix()
		if !opts.asJSON {
			printFixes(w, fixes)
		}
		if len(fixes) > 0 {
			report = runner.Run()
		}
	}

	if opts.asJSON {
		if err := writeJSON(w, report); err != nil {
			return err
		}
	} else {
		printReport(w, report, opts.all)
	}

	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func printFixes(w io.Writer, fixes []doctor.FixResult) {
	p := newPalette(w)
	for _, f := range fixes {
		if f.Fixed {
			p.success(w, fmt.Sprintf("fixed %s: %s", f.Path, f.Description))
		} else {
			p.failure(w, fmt.Sprintf("could not fix %s: %s", f.Path, f.Description))
		}
	}
	if len(fixes) > 0 {
		fmt.Fprintln(w)
	}
}

func printReport(w io.Writer, report *doctor.Report, all bool) {
	p := newPalette(w)
	shown := 0
	for _, r := range report.Results {
		if !all && !r.Problem() {
			continue
		}
		shown++

		line := fmt.Sprintf("[%s] %s: %s", r.Category, r.Name, r.Message)
		switch r.Status {
		case doctor.SeverityPass:
			p.success(w, line)
		case doctor.SeverityError:
			p.failure(w, line)
		case doctor.SeverityWarning:
			p.warning(w, "⚠ "+line)
		default:
			p.info(w, "ℹ "+line)
		}

		if damaged, ok := r.Details["damaged"].(map[string]string); ok {
			names := make([]string, 0, len(damaged))
			for name := range damaged {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				p.field(w, name, damaged[name])
			}
		}
		if problems, ok := r.Details["problems"].([]string); ok {
			fmt.Fprintln(w, "  "+strings.Join(problems, "\n  "))
		}
		if r.Problem() && r.FixHint != "" {
			p.field(w, "hint", r.FixHint)
		}
	}

	if shown > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %s\n", report.Summary)
}
