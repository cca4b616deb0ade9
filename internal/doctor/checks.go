package doctor

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/config"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
	"github.com/znzinc01/FFXIV-BackupManager/internal/paths"
	"github.com/znzinc01/FFXIV-BackupManager/internal/selector"
	"github.com/znzinc01/FFXIV-BackupManager/pkg/fileutil"
)

// secureFilePerm is the target permission for the settings file.
const secureFilePerm os.FileMode = 0o600

// StaleBackupAge is the age after which the newest backup is reported.
const StaleBackupAge = 30 * 24 * time.Hour

// SettingsCheck validates the settings file on disk.
type SettingsCheck struct {
	path  string
	loose bool // group or world writable, set by Run
}

var (
	_ Check = (*SettingsCheck)(nil)
	_ Fixer = (*SettingsCheck)(nil)
)

// NewSettingsCheck creates a check for the settings file at path.
func NewSettingsCheck(path string) *SettingsCheck {
	return &SettingsCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *SettingsCheck) Name() string { return "settings" }

// Category returns the grouping for this check.
func (c *SettingsCheck) Category() string { return CategoryConfig }

// Run reads and validates the settings file.
func (c *SettingsCheck) Run() *CheckResult {
	c.loose = false
	result := newResult(c.path)

	info, err := os.Stat(c.path)
	if os.IsNotExist(err) {
		return result.set(SeverityInfo, "no settings file; defaults are used")
	}
	if err != nil {
		return result.set(SeverityError, "cannot access settings file: %v", err)
	}

	data, err := fileutil.ReadFileWithLimit(c.path)
	if err != nil {
		return result.set(SeverityError, "cannot read settings file: %v", err)
	}

	cfg := config.Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return result.set(SeverityError, "settings file is not valid YAML: %v", err).hint("Run: xivbackup config reset")
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		problems := make([]string, len(errs))
		for i, e := range errs {
			problems[i] = e.Error()
		}
		result.Details["problems"] = problems
		return result.set(SeverityError, "settings file has %d invalid value(s)", len(errs)).
			hint("Run: xivbackup config edit, or xivbackup config reset")
	}

	result.Details["permissions"] = fmt.Sprintf("%04o", info.Mode().Perm())
	if info.Mode().Perm()&0o022 != 0 {
		c.loose = true
		result.Fixable = true
		return result.set(SeverityWarning, "settings file is writable by other users").
			hint(fmt.Sprintf("chmod %04o %s", secureFilePerm, c.path))
	}

	return result.set(SeverityPass, "settings file is valid")
}

// CanFix reports whether the last Run found loose permissions.
func (c *SettingsCheck) CanFix() bool { return c.loose }

// Fix tightens the settings file permissions.
func (c *SettingsCheck) Fix() []FixResult {
	result := FixResult{Path: c.path}
	if err := os.Chmod(c.path, secureFilePerm); err != nil {
		result.Description = fmt.Sprintf("failed to chmod %04o: %v", secureFilePerm, err)
		result.Error = errors.Wrapf(err, "chmod %04o %s", secureFilePerm, c.path)
		return []FixResult{result}
	}
	c.loose = false
	result.Fixed = true
	result.Description = fmt.Sprintf("chmod %04o", secureFilePerm)
	return []FixResult{result}
}

// GameDataCheck verifies that the game data folder holds game state.
type GameDataCheck struct {
	dir string
	sel *selector.Selector
}

var _ Check = (*GameDataCheck)(nil)

// NewGameDataCheck creates a check for the game data folder dir.
func NewGameDataCheck(dir string, sel *selector.Selector) *GameDataCheck {
	if sel == nil {
		sel = selector.Default()
	}
	return &GameDataCheck{dir: dir, sel: sel}
}

// Name returns the unique identifier for this check.
func (c *GameDataCheck) Name() string { return "game-data" }

// Category returns the grouping for this check.
func (c *GameDataCheck) Category() string { return CategoryGame }

// Run counts the qualifying entries of the game data folder.
func (c *GameDataCheck) Run() *CheckResult {
	result := newResult(c.dir)

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return result.set(SeverityError, "cannot read game data folder: %v", err).hint("Pass --source, or set recent.game_data_dir with xivbackup config edit")
	}

	var characters, reserved []string
	for _, e := range entries {
		if !e.IsDir() || !c.sel.IsQualifying(e.Name()) {
			continue
		}
		if selector.Pattern.MatchString(e.Name()) {
			characters = append(characters, e.Name())
		} else {
			reserved = append(reserved, e.Name())
		}
	}
	result.Details["character_folders"] = len(characters)
	result.Details["other_folders"] = reserved

	if len(characters)+len(reserved) == 0 {
		return result.set(SeverityWarning, "no character, client or log folders found; backups will be empty").hint("Check that this is the folder containing FFXIV_CHR... folders")
	}

	return result.set(SeverityPass, "%d character folder(s) found", len(characters))
}

// BackupDirCheck verifies the backup folder and the age of the newest backup.
type BackupDirCheck struct {
	dir     string
	engine  *backup.Engine
	now     func() time.Time
	missing bool // set by Run
}

var (
	_ Check = (*BackupDirCheck)(nil)
	_ Fixer = (*BackupDirCheck)(nil)
)

// NewBackupDirCheck creates a check for the backup folder dir.
func NewBackupDirCheck(dir string, engine *backup.Engine) *BackupDirCheck {
	return &BackupDirCheck{dir: dir, engine: engine, now: time.Now}
}

// Name returns the unique identifier for this check.
func (c *BackupDirCheck) Name() string { return "backup-folder" }

// Category returns the grouping for this check.
func (c *BackupDirCheck) Category() string { return CategoryBackups }

// Run checks that the folder exists, is writable and holds a recent backup.
func (c *BackupDirCheck) Run() *CheckResult {
	c.missing = false
	result := newResult(c.dir)

	info, err := os.Stat(c.dir)
	switch {
	case os.IsNotExist(err):
		c.missing = true
		result.Fixable = true
		return result.set(SeverityWarning, "backup folder does not exist").hint("mkdir -p " + c.dir)
	case err != nil:
		return result.set(SeverityError, "cannot access backup folder: %v", err)
	case !info.IsDir():
		return result.set(SeverityError, "backup folder is not a directory")
	}

	if err := probeWritable(c.dir); err != nil {
		return result.set(SeverityError, "backup folder is not writable: %v", err)
	}

	archives, err := c.engine.List(c.dir)
	if errors.Is(err, backup.ErrNoArchivesFound) {
		return result.set(SeverityInfo, "no backups yet").hint("Run: xivbackup backup")
	}
	if err != nil {
		return result.set(SeverityError, "cannot list backups: %v", err)
	}

	newest := archives[0]
	age := c.now().Sub(newest.CreatedAt)
	result.Details["archives"] = len(archives)
	result.Details["newest"] = newest.Name

	if age > StaleBackupAge {
		return result.set(SeverityWarning, "newest backup is %d days old", int(age.Hours()/24)).hint("Run: xivbackup backup")
	}

	return result.set(SeverityPass, "%d backup(s), newest %s", len(archives), newest.CreatedAt.Format("2006-01-02 15:04"))
}

// probeWritable creates and removes a temp file in dir.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".xivbackup-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// CanFix reports whether the last Run found the folder missing.
func (c *BackupDirCheck) CanFix() bool { return c.missing }

// Fix creates the backup folder.
func (c *BackupDirCheck) Fix() []FixResult {
	result := FixResult{Path: c.dir}
	if err := paths.EnsureDir(c.dir, 0); err != nil {
		result.Description = fmt.Sprintf("failed to create folder: %v", err)
		result.Error = errors.Wrapf(err, "creating %s", c.dir)
		return []FixResult{result}
	}
	c.missing = false
	result.Fixed = true
	result.Description = "created folder"
	return []FixResult{result}
}

// ArchiveCheck verifies every archive in the backup folder.
type ArchiveCheck struct {
	dir    string
	engine *backup.Engine
}

var _ Check = (*ArchiveCheck)(nil)

// NewArchiveCheck creates a check that verifies the archives in dir.
func NewArchiveCheck(dir string, engine *backup.Engine) *ArchiveCheck {
	return &ArchiveCheck{dir: dir, engine: engine}
}

// Name returns the unique identifier for this check.
func (c *ArchiveCheck) Name() string { return "archive-integrity" }

// Category returns the grouping for this check.
func (c *ArchiveCheck) Category() string { return CategoryBackups }

// Run reads every entry of every archive.
func (c *ArchiveCheck) Run() *CheckResult {
	result := newResult(c.dir)

	archives, err := c.engine.List(c.dir)
	if err != nil {
		return result.set(SeverityInfo, "no archives to verify")
	}

	broken := make(map[string]string)
	for _, a := range archives {
		if _, err := c.engine.Verify(a.Path); err != nil {
			broken[a.Name] = err.Error()
		}
	}
	result.Details["verified"] = len(archives) - len(broken)

	if len(broken) > 0 {
		result.Details["damaged"] = broken
		return result.set(SeverityError, "%d of %d archive(s) are damaged", len(broken), len(archives)).
			hint("Delete the damaged archives and run: xivbackup backup")
	}

	return result.set(SeverityPass, "%d archive(s) verified", len(archives))
}
