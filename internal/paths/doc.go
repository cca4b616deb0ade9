// Package paths resolves the directories xivbackup reads from and writes to.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg so that settings and backups land in
// the conventional per-user locations on every operating system:
//
//	paths.ConfigFile()       // <ConfigHome>/xivbackup/config.yaml
//	paths.LocalesDir()       // <ConfigHome>/xivbackup/locales/
//	paths.DefaultBackupDir() // <DataHome>/xivbackup/backups/
//
// # Game Data Directory
//
// The game client keeps its configuration under the user's Documents
// folder. [DefaultGameDataDir] probes the known client layouts in order and
// falls back to the Documents folder itself:
//
//	| Candidate                                          |
//	|----------------------------------------------------|
//	| <Documents>/My Games/FINAL FANTASY XIV - KOREA     |
//	| <Documents>/My Games/FINAL FANTASY XIV - A Realm Reborn |
//	| <Documents>                                        |
package paths
