// Package errors provides error handling conventions for the xivbackup CLI.
//
// It re-exports the cockroachdb/errors helpers used across the module so
// callers import a single errors package, and defines an ExitError type
// that carries a process exit code and an optional suggestion.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (bad flag, missing path, declined prompt)
//   - ExitSystem (2): System-related error (I/O, permissions, corrupt archive)
//
// # ExitError
//
//	err := xerrors.NewUserError(xerrors.ErrNotFound, "Run: xivbackup list")
//	var exitErr *xerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
