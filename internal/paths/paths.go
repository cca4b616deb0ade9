package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used below the XDG base directories.
const AppName = "xivbackup"

// Game client directory names below <Documents>/My Games, in probe order.
const (
	MyGamesDir      = "My Games"
	KoreanClientDir = "FINAL FANTASY XIV - KOREA"
	GlobalClientDir = "FINAL FANTASY XIV - A Realm Reborn"
)

const (
	configFileName = "config.yaml"
	localesDirName = "locales"
	backupsDirName = "backups"
)

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrap(ErrHomeDirNotFound, "resolving home")
	}
	return home, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// DocumentsDir returns the user's Documents folder.
func DocumentsDir() string {
	return xdg.UserDirs.Documents
}

// ConfigDirEnv overrides the settings directory when set.
const ConfigDirEnv = "XIVBACKUP_CONFIG_DIR"

// ConfigDir returns <ConfigHome>/xivbackup, or the value of
// XIVBACKUP_CONFIG_DIR when that is set.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default settings file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// LocalesDir returns the directory searched for user-supplied locale catalogs.
func LocalesDir() string {
	return filepath.Join(ConfigDir(), localesDirName)
}

// DefaultBackupDir returns <DataHome>/xivbackup/backups.
func DefaultBackupDir() string {
	return filepath.Join(DataHome(), AppName, backupsDirName)
}

// GameDataCandidates returns the directories probed by DefaultGameDataDir,
// most specific first.
func GameDataCandidates(documentsDir string) []string {
	return []string{
		filepath.Join(documentsDir, MyGamesDir, KoreanClientDir),
		filepath.Join(documentsDir, MyGamesDir, GlobalClientDir),
		documentsDir,
	}
}

// DefaultGameDataDir returns the first existing candidate below
// documentsDir. If none exists, documentsDir is returned as is.
func DefaultGameDataDir(documentsDir string) string {
	for _, dir := range GameDataCandidates(documentsDir) {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return documentsDir
}
