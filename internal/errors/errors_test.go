package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{"sentinel", NewExitError(ErrNotFound, ExitUser), "resource not found"},
		{"wrapped", NewExitError(Wrap(ErrInvalidConfig, "loading settings"), ExitUser), "loading settings: invalid configuration"},
		{"nil error", NewExitError(nil, ExitSystem), "exit code 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestExitError_Is(t *testing.T) {
	archiveMissing := Mark(New("no backups in /tmp/b"), ErrNotFound)

	assert.True(t, Is(NewUserError(archiveMissing, ""), ErrNotFound))
	assert.True(t, Is(NewSystemError(fmt.Errorf("restore: %w", archiveMissing), ""), ErrNotFound))
	assert.False(t, Is(NewUserError(archiveMissing, ""), ErrInvalidConfig))
	assert.False(t, Is(NewExitError(nil, ExitUser), ErrNotFound))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", New("boom"), ExitSystem},
		{"user error", NewUserError(ErrNotFound, ""), ExitUser},
		{"wrapped user error", Wrap(NewUserError(ErrNotFound, ""), "restore"), ExitUser},
		{"system error", NewSystemError(New("disk full"), "free some space"), ExitSystem},
		{"config error", NewConfigError(ErrInvalidConfig), ExitUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestNewConfigError_Suggestion(t *testing.T) {
	plain := NewConfigError(Mark(New("bad yaml"), ErrInvalidConfig))
	assert.Equal(t, "Run: xivbackup config reset", plain.Suggestion)
	assert.True(t, Is(plain, ErrInvalidConfig))

	hinted := NewConfigError(WithHint(New("keep must be at least 1"), "Run: xivbackup config edit"))
	assert.Equal(t, "Run: xivbackup config edit", hinted.Suggestion)
}

func TestSuggestionOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"exit error", NewUserError(New("x"), "Pass --dest"), "Pass --dest"},
		{"wrapped exit error", Wrap(NewSystemError(New("x"), "Free some space"), "backup"), "Free some space"},
		{"hint only", WithHint(New("x"), "Run: xivbackup doctor"), "Run: xivbackup doctor"},
		{"exit error without suggestion falls back to hint", NewUserError(WithHint(New("x"), "Check the path"), ""), "Check the path"},
		{"nothing", New("x"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestionOf(tt.err))
		})
	}
}
