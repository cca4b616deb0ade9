// Package selector decides which directories hold game state.
//
// A directory qualifies when its base name starts with the character
// folder prefix FFXIV_CHR followed by sixteen word characters, or when it
// is exactly one of the reserved names (the localized client folder and
// the log folder). The same rule drives inclusion during backup and
// deletion during restore.
//
// The pattern is anchored at the start only, so a name such as
// FFXIV_CHR0123456789abcdef.old still qualifies:
//
//	selector.IsQualifying("FFXIV_CHR0040000000000001") // true
//	selector.IsQualifying("log")                       // true
//	selector.IsQualifying("screenshots")               // false
package selector
