// Package doctor provides diagnostic checks for an xivbackup installation.
package doctor

import "fmt"

// Severity ranks a check result. Higher values are worse.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo
	// SeverityWarning means backups still work but need attention.
	SeverityWarning
	// SeverityError means a backup or restore would fail or lose data.
	SeverityError
)

var severityNames = [...]string{"pass", "info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Check categories, one per area a backup depends on.
const (
	CategoryConfig  = "config"
	CategoryGame    = "game"
	CategoryBackups = "backups"
)

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Details always carries "path", the file or folder checked.
	Details map[string]any `json:"details,omitempty"`

	// Fixable is set when doctor --fix can repair the problem.
	Fixable bool   `json:"fixable,omitempty"`
	FixHint string `json:"fix_hint,omitempty"`
}

// newResult starts a result for the file or folder at path.
func newResult(path string) *CheckResult {
	return &CheckResult{Details: map[string]any{"path": path}}
}

// set records the status and message and returns r.
func (r *CheckResult) set(status Severity, format string, args ...any) *CheckResult {
	r.Status = status
	r.Message = fmt.Sprintf(format, args...)
	return r
}

// hint records what the user can run to resolve r.
func (r *CheckResult) hint(h string) *CheckResult {
	r.FixHint = h
	return r
}

// Problem reports whether r needs attention.
func (r *CheckResult) Problem() bool {
	return r.Status >= SeverityWarning
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d passed, %d info, %d warnings, %d errors", s.Passed, s.Info, s.Warnings, s.Errors)
}
