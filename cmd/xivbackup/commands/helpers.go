package commands

import (
	"encoding/json"
	"io"

	"github.com/znzinc01/FFXIV-BackupManager/internal/paths"
)

// timeLayout is used for every timestamp shown to the user.
const timeLayout = "2006-01-02 15:04:05"

// expandArg expands a leading "~" in a path argument.
func expandArg(p string) (string, error) {
	return paths.ExpandHome(p)
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
