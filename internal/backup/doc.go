// Package backup creates and restores zip archives of game state.
//
// An [Engine] performs two operations built on the selector package:
//
//	eng := backup.NewEngine(backup.WithLogger(logger))
//	name, err := eng.Backup(gameDir, destDir)   // FFXIV-Backup-20240102-030405.zip
//	status, err := eng.Restore(archivePath, gameDir)
//
// # Backup
//
// Backup walks the source tree. Every directory below the root whose base
// name qualifies contributes the files it directly contains; because the
// walk is recursive, nested qualifying directories contribute their own
// files too. Entries are stored DEFLATE-compressed under their path
// relative to the source root. The archive name is derived from the
// current local time, so a failed backup may leave a partial file behind.
//
// # Restore
//
// Restore is destructive. It removes every qualifying immediate child of
// the target, then extracts the archive into the target and sets each
// file's access and modification time to the time recorded in the
// archive. Entries outside qualifying top-level directories are skipped.
// Nothing is rolled back on failure unless staged restore is enabled with
// [WithStagedRestore], in which case extraction happens first in a
// temporary directory inside the target and the target is only touched
// once the whole archive has been extracted.
//
// # Errors
//
// Failures are wrapped with context and marked as either [ErrFilesystem]
// or [ErrArchiveFormat]. [KindOf] recovers the kind and [NewOutcome]
// folds a result into the (ok, message) pair shown to users.
package backup
