package config

import (
	"path/filepath"
	"strings"

	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

// Validation errors for settings fields.
var (
	// ErrUnsupportedVersion indicates the version field is not CurrentVersion.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidRetention indicates retention.keep is below one.
	ErrInvalidRetention = errors.New("retention.keep must be >= 1")

	// ErrInvalidName indicates a reserved name that cannot match a directory entry.
	ErrInvalidName = errors.New("invalid reserved name")
)

// Validate checks Settings for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Settings) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, errors.Mark(
			errors.Newf("unsupported config version: %d", cfg.Version), ErrUnsupportedVersion))
	}

	for _, f := range []struct{ field, path string }{
		{"recent.game_data_dir", cfg.Recent.GameDataDir},
		{"recent.backup_destination", cfg.Recent.BackupDestination},
	} {
		if err := validatePath(f.path); err != nil {
			errs = append(errs, &FieldError{Field: f.field, Value: f.path, Err: err})
		}
	}

	if cfg.Retention.Keep < 1 {
		errs = append(errs, ErrInvalidRetention)
	}

	for _, name := range cfg.Selector.ExtraNames {
		if err := validateName(name); err != nil {
			errs = append(errs, &FieldError{Field: "selector.extra_names", Value: name, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists. Empty paths mean "use default".
func validatePath(path string) error {
	if path == "" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	if cleaned := filepath.Clean(path); cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}

// validateName accepts only plain base names.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`+"\x00") {
		return ErrInvalidName
	}
	return nil
}

// FieldError represents an error for a specific settings key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
