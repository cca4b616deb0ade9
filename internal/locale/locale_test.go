package locale

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, userDir string) *Registry {
	t.Helper()
	r, err := NewRegistry(userDir)
	require.NoError(t, err)
	return r
}

func TestBuiltinCatalogs(t *testing.T) {
	r := newRegistry(t, "")

	assert.Equal(t, []string{"en_US", "ko_KR"}, r.Names())
	assert.Equal(t, "English", r.Catalog("en_US").Language())
	assert.Equal(t, "한국어", r.Catalog("ko_KR").Language())
}

func TestBuiltinCatalogs_SameKeys(t *testing.T) {
	r := newRegistry(t, "")
	en := r.Catalog("en_US").messages
	ko := r.Catalog("ko_KR").messages

	for key := range en {
		assert.Contains(t, ko, key, "ko_KR is missing %q", key)
	}
	for key := range ko {
		assert.Contains(t, en, key, "en_US is missing %q", key)
	}
}

func TestCatalog_T(t *testing.T) {
	r := newRegistry(t, "")

	assert.Equal(t, "Backup completed.", r.Catalog("en_US").T("backup_success"))
	assert.Equal(t, "백업이 완료되었습니다.", r.Catalog("ko_KR").T("backup_success"))
	assert.Equal(t, "no_such_key", r.Catalog("ko_KR").T("no_such_key"))
	assert.Equal(t, "Removed 3 old backup(s).", r.Catalog("en_US").Tf("prune_removed", 3))
}

func TestRegistry_CatalogFallback(t *testing.T) {
	r := newRegistry(t, "")

	tests := []struct {
		in   string
		want string
	}{
		{"ko_KR", "ko_KR"},
		{"ko-KR", "ko_KR"},
		{"ko_KR.UTF-8", "ko_KR"},
		{"de_DE", Fallback},
		{"", Fallback},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Catalog(tt.in).Name())
		})
	}
}

func TestRegistry_UserCatalogs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de_DE.toml"), []byte(`
language = "Deutsch"

[messages]
backup_success = "Sicherung abgeschlossen."
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en_US.toml"), []byte(`
[messages]
backup = "Back up"
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	r := newRegistry(t, dir)
	assert.Equal(t, []string{"de_DE", "en_US", "ko_KR"}, r.Names())
	assert.True(t, r.Has("de_DE"))

	de := r.Catalog("de_DE")
	assert.Equal(t, "Deutsch", de.Language())
	assert.Equal(t, "Sicherung abgeschlossen.", de.T("backup_success"))
	assert.Equal(t, "Restore completed.", de.T("restore_success"), "missing keys fall back to en_US")

	en := r.Catalog("en_US")
	assert.Equal(t, "Back up", en.T("backup"))
	assert.Equal(t, "English", en.Language(), "overrides keep the built-in display name")
	assert.Equal(t, "Backup completed.", en.T("backup_success"))
}

func TestRegistry_MissingUserDir(t *testing.T) {
	r := newRegistry(t, filepath.Join(t.TempDir(), "missing"))
	assert.Len(t, r.Names(), 2)
}

func TestRegistry_InvalidUserCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xx_XX.toml"), []byte("messages = [broken"), 0o600))

	_, err := NewRegistry(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xx_XX")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en_US.UTF-8", "en_US"},
		{"ko_KR.utf8", "ko_KR"},
		{"de_DE@euro", "de_DE"},
		{"en-us", "en_US"},
		{"fr", "fr"},
		{"C", ""},
		{"POSIX", ""},
		{"C.UTF-8", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestDetect(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "ko_KR.UTF-8")
	assert.Equal(t, "ko_KR", Detect())

	t.Setenv("LC_MESSAGES", "en_US.UTF-8")
	assert.Equal(t, "en_US", Detect())

	t.Setenv("LC_ALL", "C")
	assert.Equal(t, "en_US", Detect(), "C is skipped")

	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
	assert.Empty(t, Detect())
}

func TestResolve(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "ko_KR.UTF-8")

	assert.Equal(t, "en_US", Resolve("en-US"))
	assert.Equal(t, "ko_KR", Resolve(""))
}
