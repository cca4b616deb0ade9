package doctor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_AddCheck(t *testing.T) {
	r := NewRunner()
	names := []string{"first", "second", "third"}
	for _, name := range names {
		check := NewMockCheck(t)
		check.EXPECT().Name().Return(name).Maybe()
		r.AddCheck(check)
	}

	require.Len(t, r.checks, 3)
	for i, want := range names {
		assert.Equal(t, want, r.checks[i].Name(), "order preserved")
	}
}

func TestRunner_Run(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewRunner()
	r.now = func() time.Time { return fixed }

	statuses := []Severity{SeverityPass, SeverityInfo, SeverityWarning, SeverityError, SeverityPass}
	for _, s := range statuses {
		check := NewMockCheck(t)
		check.EXPECT().Run().Return(&CheckResult{Name: "c", Category: "test", Status: s}).Once()
		r.AddCheck(check)
	}

	report := r.Run()
	assert.Equal(t, fixed, report.Timestamp)
	assert.Len(t, report.Results, 5)
	assert.Equal(t, Summary{Passed: 2, Info: 1, Warnings: 1, Errors: 1}, report.Summary)
	assert.True(t, report.HasErrors())
	assert.True(t, report.HasWarnings())
}

func TestRunner_RunFillsNameAndCategory(t *testing.T) {
	r := NewRunner()
	check := NewMockCheck(t)
	check.EXPECT().Run().Return(&CheckResult{Status: SeverityPass})
	check.EXPECT().Name().Return("named")
	check.EXPECT().Category().Return("grouped")
	r.AddCheck(check)

	report := r.Run()
	require.Len(t, report.Results, 1)
	assert.Equal(t, "named", report.Results[0].Name)
	assert.Equal(t, "grouped", report.Results[0].Category)
	assert.False(t, report.HasErrors())
	assert.False(t, report.HasWarnings())
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.s.String())
	}
}

func TestReport_JSON(t *testing.T) {
	report := &Report{}
	report.add(&CheckResult{Name: "settings", Category: "config", Status: SeverityWarning, Message: "m"})

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warning"`)
	assert.Contains(t, string(data), `"warnings":1`)
}

func TestCheckResult_Problem(t *testing.T) {
	for s, want := range map[Severity]bool{
		SeverityPass:    false,
		SeverityInfo:    false,
		SeverityWarning: true,
		SeverityError:   true,
	} {
		assert.Equal(t, want, newResult("/x").set(s, "m").Problem(), s.String())
	}
}

func TestCheckResult_SetAndHint(t *testing.T) {
	r := newResult("/games/ffxiv").set(SeverityWarning, "%d of %d", 1, 2).hint("Run: xivbackup backup")
	assert.Equal(t, "1 of 2", r.Message)
	assert.Equal(t, "Run: xivbackup backup", r.FixHint)
	assert.Equal(t, "/games/ffxiv", r.Details["path"])
}

func TestSummary_String(t *testing.T) {
	s := Summary{Passed: 3, Info: 1, Warnings: 0, Errors: 2}
	assert.Equal(t, "3 passed, 1 info, 0 warnings, 2 errors", s.String())
}
