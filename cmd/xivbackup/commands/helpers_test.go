package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/config"
	"github.com/znzinc01/FFXIV-BackupManager/internal/locale"
	"github.com/znzinc01/FFXIV-BackupManager/internal/logging"
	"github.com/znzinc01/FFXIV-BackupManager/internal/paths"
)

const charDir = "FFXIV_CHR0040000000000001"

// newTestApp returns an app with default settings stored in a temp dir.
func newTestApp(t *testing.T) *app {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.ConfigDirEnv, dir)
	config.Init()

	locales, err := locale.NewRegistry("")
	require.NoError(t, err)

	settings := config.Default()
	settings.General.FirstRun = false
	return &app{
		settings:   settings,
		configPath: filepath.Join(dir, "config.yaml"),
		locales:    locales,
		msg:        locales.Catalog(locale.Fallback),
		logger:     logging.ForTest(t),
	}
}

// gameDir creates a game data folder with one character folder and a log.
func gameDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, charDir, "HOTBAR.DAT"), "hotbar")
	writeTestFile(t, filepath.Join(root, "log", "chat.log"), "chat")
	writeTestFile(t, filepath.Join(root, "FFXIV.cfg"), "cfg")
	return root
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// archiveAt creates a backup of source in dest as if taken at ts.
func archiveAt(t *testing.T, source, dest string, ts time.Time) string {
	t.Helper()
	eng := backup.NewEngine(backup.WithClock(backup.ClockFunc(func() time.Time { return ts })))
	name, err := eng.Backup(source, dest)
	require.NoError(t, err)
	return filepath.Join(dest, name)
}
