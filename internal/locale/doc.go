// Package locale provides the translated messages shown by the xivbackup CLI.
//
// Catalogs are TOML files named after a locale identifier (en_US.toml,
// ko_KR.toml) with a display name and a flat messages table:
//
//	language = "English"
//
//	[messages]
//	backup_success = "Backup completed."
//
// The built-in catalogs are embedded in the binary. Additional or
// overriding catalogs are read from a user directory (see
// paths.LocalesDir). Lookups fall back to en_US, then to the key itself.
package locale
