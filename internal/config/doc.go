// Package config provides settings management for the xivbackup CLI.
//
// Settings are stored as YAML at <ConfigHome>/xivbackup/config.yaml and
// loaded through Viper, so every key can also be set from the environment
// with the XIVBACKUP_ prefix (dots become underscores, for example
// XIVBACKUP_RETENTION_KEEP=10).
//
//	version: 1
//	general:
//	  first_run: true
//	  locale: ""            # empty means detect from LANG/LC_ALL
//	recent:
//	  game_data_dir: ""
//	  backup_destination: ""
//	restore:
//	  staged: false
//	selector:
//	  extra_names: []
//	retention:
//	  keep: 5
//
// # Loading Settings
//
// Call [Init] once at startup, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load(path) // path may be empty
//	if err != nil {
//	    return err
//	}
//
// Loaded settings are validated automatically; failures are marked with
// errors.ErrInvalidConfig.
//
// # Saving Settings
//
// [Save] writes the file atomically, creating the parent directory when
// needed. [Reset] overwrites the file with [Default].
package config
