package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
	"github.com/znzinc01/FFXIV-BackupManager/internal/paths"
	"github.com/znzinc01/FFXIV-BackupManager/pkg/fileutil"
)

// CurrentVersion is the settings schema version written by Save.
const CurrentVersion = 1

// filePerm is the permission of the settings file.
const filePerm = 0o600

// Settings is the persisted state of the CLI.
type Settings struct {
	Version   int               `mapstructure:"version" yaml:"version"`
	General   GeneralSettings   `mapstructure:"general" yaml:"general"`
	Recent    RecentSettings    `mapstructure:"recent" yaml:"recent"`
	Restore   RestoreSettings   `mapstructure:"restore" yaml:"restore"`
	Selector  SelectorSettings  `mapstructure:"selector" yaml:"selector"`
	Retention RetentionSettings `mapstructure:"retention" yaml:"retention"`
}

// GeneralSettings holds first-run state and the UI locale.
type GeneralSettings struct {
	FirstRun bool   `mapstructure:"first_run" yaml:"first_run"`
	Locale   string `mapstructure:"locale" yaml:"locale"`
}

// RecentSettings remembers the directories used by the last backup.
type RecentSettings struct {
	GameDataDir       string `mapstructure:"game_data_dir" yaml:"game_data_dir"`
	BackupDestination string `mapstructure:"backup_destination" yaml:"backup_destination"`
}

// RestoreSettings controls how archives are restored.
type RestoreSettings struct {
	Staged bool `mapstructure:"staged" yaml:"staged"`
}

// SelectorSettings extends the set of reserved directory names.
type SelectorSettings struct {
	ExtraNames []string `mapstructure:"extra_names" yaml:"extra_names"`
}

// RetentionSettings controls how many archives prune keeps.
type RetentionSettings struct {
	Keep int `mapstructure:"keep" yaml:"keep"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		Version: CurrentVersion,
		General: GeneralSettings{FirstRun: true},
		Selector: SelectorSettings{
			ExtraNames: []string{},
		},
		Retention: RetentionSettings{Keep: backup.DefaultRetentionCount},
	}
}

// Init resets Viper and registers defaults, search paths and environment
// bindings. Call this once at application startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("XIVBACKUP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("general.first_run", d.General.FirstRun)
	viper.SetDefault("general.locale", d.General.Locale)
	viper.SetDefault("recent.game_data_dir", d.Recent.GameDataDir)
	viper.SetDefault("recent.backup_destination", d.Recent.BackupDestination)
	viper.SetDefault("restore.staged", d.Restore.Staged)
	viper.SetDefault("selector.extra_names", d.Selector.ExtraNames)
	viper.SetDefault("retention.keep", d.Retention.Keep)
}

// Load reads the settings file.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the default location is searched and a
// missing file yields the defaults.
func Load(path string) (*Settings, error) {
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), errors.ErrNotFound)
		}
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrInvalidConfig)
		}
		// Nothing in the search path; defaults apply.
	}

	var cfg Settings
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		err := errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
		return nil, errors.WithHint(err, "Run: xivbackup config edit, or xivbackup config reset")
	}

	return &cfg, nil
}

// ResolvePath returns path, or the default settings file when path is empty.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return paths.ConfigFile()
}

// Save writes cfg to path atomically, creating the parent directory.
func Save(path string, cfg *Settings) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrapf(err, "creating config directory for %s", path)
	}
	if err := fileutil.AtomicWriteYAML(path, cfg, filePerm); err != nil {
		return errors.Wrapf(err, "saving config to %s", path)
	}
	return nil
}

// Reset overwrites the settings file at path with the defaults and
// returns them.
func Reset(path string) (*Settings, error) {
	cfg := Default()
	if err := Save(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
