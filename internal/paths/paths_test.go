package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseDirs(t *testing.T) {
	t.Setenv(ConfigDirEnv, "")

	tests := []struct {
		name string
		fn   func() string
		base func() string
		tail string
	}{
		{"ConfigDir", ConfigDir, ConfigHome, AppName},
		{"ConfigFile", ConfigFile, ConfigHome, filepath.Join(AppName, "config.yaml")},
		{"LocalesDir", LocalesDir, ConfigHome, filepath.Join(AppName, "locales")},
		{"DefaultBackupDir", DefaultBackupDir, DataHome, filepath.Join(AppName, "backups")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn()
			assert.True(t, filepath.IsAbs(got), "%s() = %q, want absolute path", tt.name, got)
			assert.Equal(t, filepath.Join(tt.base(), tt.tail), got)
		})
	}
}

func TestConfigDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	assert.Equal(t, dir, ConfigDir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), ConfigFile())
	assert.Equal(t, filepath.Join(dir, "locales"), LocalesDir())
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir, 0))
	require.NoError(t, EnsureDir(dir, 0), "EnsureDir must be idempotent")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/backups", filepath.Join(home, "backups")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultGameDataDir(t *testing.T) {
	mkdir := func(t *testing.T, parts ...string) {
		t.Helper()
		require.NoError(t, os.MkdirAll(filepath.Join(parts...), 0o755))
	}

	t.Run("korean client preferred", func(t *testing.T) {
		docs := t.TempDir()
		mkdir(t, docs, MyGamesDir, KoreanClientDir)
		mkdir(t, docs, MyGamesDir, GlobalClientDir)
		assert.Equal(t, filepath.Join(docs, MyGamesDir, KoreanClientDir), DefaultGameDataDir(docs))
	})

	t.Run("global client", func(t *testing.T) {
		docs := t.TempDir()
		mkdir(t, docs, MyGamesDir, GlobalClientDir)
		assert.Equal(t, filepath.Join(docs, MyGamesDir, GlobalClientDir), DefaultGameDataDir(docs))
	})

	t.Run("file with client name is ignored", func(t *testing.T) {
		docs := t.TempDir()
		mkdir(t, docs, MyGamesDir)
		require.NoError(t, os.WriteFile(filepath.Join(docs, MyGamesDir, KoreanClientDir), nil, 0o644))
		assert.Equal(t, docs, DefaultGameDataDir(docs))
	})

	t.Run("falls back to documents", func(t *testing.T) {
		docs := t.TempDir()
		assert.Equal(t, docs, DefaultGameDataDir(docs))
	})
}
