// Package main is the entry point for the xivbackup CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/znzinc01/FFXIV-BackupManager/cmd/xivbackup/commands"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)

	if suggestion := errors.SuggestionOf(err); suggestion != "" {
		fmt.Fprintln(os.Stderr, suggestion)
	}

	os.Exit(errors.ExitCode(err))
}
