// Package logging provides structured logging for xivbackup using slog.
//
// Text output goes through [Handler], a compact colorized handler meant for
// terminals; JSON output uses the standard library handler. [MultiHandler]
// fans records out to several handlers so that --log-file can capture a
// JSON copy of everything shown on stderr.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// Tests should use [ForTest] so log lines show up only for failing tests.
package logging
