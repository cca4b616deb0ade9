package selector

import (
	"regexp"
	"slices"
)

// CharacterPrefix is the literal prefix of per-character settings folders.
const CharacterPrefix = "FFXIV_CHR"

// Reserved directory names that always qualify.
const (
	// KoreanClientDir is the data folder name used by the Korean client.
	KoreanClientDir = "FINAL FANTASY XIV - KOREA"

	// LogDir holds chat logs and other client logs.
	LogDir = "log"
)

// Pattern matches character folder names. Only the start is anchored.
var Pattern = regexp.MustCompile(`^` + CharacterPrefix + `\w{16}`)

// ReservedNames returns the default reserved directory names.
func ReservedNames() []string {
	return []string{KoreanClientDir, LogDir}
}

// Selector evaluates directory base names against the qualifying rule.
// The zero value is not usable; use New.
type Selector struct {
	reserved []string
}

// New returns a Selector with the default reserved names plus extra.
// Empty and duplicate names are ignored.
func New(extra ...string) *Selector {
	reserved := ReservedNames()
	for _, name := range extra {
		if name == "" || slices.Contains(reserved, name) {
			continue
		}
		reserved = append(reserved, name)
	}
	return &Selector{reserved: reserved}
}

// IsQualifying reports whether name is a game state directory name.
// Matching is case-sensitive and applies to base names only.
func (s *Selector) IsQualifying(name string) bool {
	if Pattern.MatchString(name) {
		return true
	}
	return slices.Contains(s.reserved, name)
}

// Reserved returns a copy of the reserved names this Selector accepts.
func (s *Selector) Reserved() []string {
	return slices.Clone(s.reserved)
}

var defaultSelector = New()

// Default returns the Selector used by IsQualifying.
func Default() *Selector {
	return defaultSelector
}

// IsQualifying reports whether name qualifies under the default rule.
func IsQualifying(name string) bool {
	return defaultSelector.IsQualifying(name)
}
