package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
	"github.com/znzinc01/FFXIV-BackupManager/pkg/fileutil"
)

// Fallback is the locale used when the requested one has no catalog.
const Fallback = "en_US"

const catalogExt = ".toml"

//go:embed catalogs/*.toml
var builtin embed.FS

// catalogFile is the on-disk shape of a catalog.
type catalogFile struct {
	Language string            `toml:"language"`
	Messages map[string]string `toml:"messages"`
}

// Catalog resolves message keys for one locale.
type Catalog struct {
	name     string
	language string
	messages map[string]string
	fallback *Catalog
}

// Name returns the locale identifier, e.g. "ko_KR".
func (c *Catalog) Name() string { return c.name }

// Language returns the display name of the locale.
func (c *Catalog) Language() string { return c.language }

// T returns the message for key, falling back to the fallback catalog and
// finally to the key itself.
func (c *Catalog) T(key string) string {
	for cat := c; cat != nil; cat = cat.fallback {
		if msg, ok := cat.messages[key]; ok {
			return msg
		}
	}
	return key
}

// Tf formats the message for key with args.
func (c *Catalog) Tf(key string, args ...any) string {
	return fmt.Sprintf(c.T(key), args...)
}

// Registry holds every catalog known to the CLI.
type Registry struct {
	catalogs map[string]*Catalog
}

// NewRegistry loads the embedded catalogs and then every *.toml file in
// userDir. User catalogs replace built-in messages key by key. A missing
// userDir is not an error; an empty userDir skips the lookup.
func NewRegistry(userDir string) (*Registry, error) {
	r := &Registry{catalogs: make(map[string]*Catalog)}

	entries, err := fs.ReadDir(builtin, "catalogs")
	if err != nil {
		return nil, errors.Wrap(err, "reading built-in catalogs")
	}
	for _, e := range entries {
		data, err := fs.ReadFile(builtin, "catalogs/"+e.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "reading built-in catalog %s", e.Name())
		}
		if err := r.add(strings.TrimSuffix(e.Name(), catalogExt), data); err != nil {
			return nil, err
		}
	}

	if userDir != "" {
		if err := r.loadDir(userDir); err != nil {
			return nil, err
		}
	}

	fb := r.catalogs[Fallback]
	for name, c := range r.catalogs {
		if name != Fallback {
			c.fallback = fb
		}
	}
	return r, nil
}

func (r *Registry) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "reading locale directory %s", dir)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != catalogExt {
			continue
		}
		data, err := fileutil.ReadFileWithLimit(filepath.Join(dir, e.Name()))
		if err != nil {
			return errors.Wrapf(err, "reading locale catalog %s", e.Name())
		}
		if err := r.add(strings.TrimSuffix(e.Name(), catalogExt), data); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) add(name string, data []byte) error {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return errors.Wrapf(err, "parsing locale catalog %s", name)
	}

	c, ok := r.catalogs[name]
	if !ok {
		c = &Catalog{name: name, language: name, messages: make(map[string]string)}
		r.catalogs[name] = c
	}
	if file.Language != "" {
		c.language = file.Language
	}
	for k, v := range file.Messages {
		c.messages[k] = v
	}
	return nil
}

// Names returns the available locale identifiers, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.catalogs))
	for name := range r.catalogs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether a catalog exists for name.
func (r *Registry) Has(name string) bool {
	_, ok := r.catalogs[name]
	return ok
}

// Catalog returns the catalog for name after normalization, or the
// fallback catalog when none exists.
func (r *Registry) Catalog(name string) *Catalog {
	if c, ok := r.catalogs[Normalize(name)]; ok {
		return c
	}
	return r.catalogs[Fallback]
}

// Normalize turns POSIX and BCP 47 style tags into catalog identifiers:
// "ko_KR.UTF-8" and "ko-KR" both become "ko_KR". "C" and "POSIX" yield "".
func Normalize(tag string) string {
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "-", "_")
	if tag == "C" || tag == "POSIX" {
		return ""
	}
	lang, region, found := strings.Cut(tag, "_")
	if !found {
		return strings.ToLower(lang)
	}
	return strings.ToLower(lang) + "_" + strings.ToUpper(region)
}

// Detect returns the user's locale from LC_ALL, LC_MESSAGES or LANG, in
// that order, or "" when none is set.
func Detect() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag := Normalize(os.Getenv(env)); tag != "" {
			return tag
		}
	}
	return ""
}

// Resolve returns configured when set, otherwise the detected locale.
func Resolve(configured string) string {
	if configured != "" {
		return Normalize(configured)
	}
	return Detect()
}
