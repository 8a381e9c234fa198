package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "resource not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
		{
			name: "success code with error",
			err:  NewExitError(errors.New("unexpected"), ExitSuccess),
			want: "unexpected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     true,
		},
		{
			name:       "unwrap through wrapped error",
			err:        NewExitError(fmt.Errorf("backup loading: %w", ErrMissingName), ExitUser),
			wantTarget: ErrMissingName,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrInvalidConfig,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestExitError_As(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantAs   bool
	}{
		{
			name:     "direct ExitError",
			err:      NewExitError(ErrNotFound, ExitUser),
			wantCode: ExitUser,
			wantAs:   true,
		},
		{
			name:     "wrapped ExitError",
			err:      fmt.Errorf("command failed: %w", NewExitError(ErrInvalidConfig, ExitUser)),
			wantCode: ExitUser,
			wantAs:   true,
		},
		{
			name:     "ExitSystem code",
			err:      NewExitError(ErrNotFound, ExitSystem),
			wantCode: ExitSystem,
			wantAs:   true,
		},
		{
			name:     "non-ExitError",
			err:      ErrNotFound,
			wantCode: 0,
			wantAs:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exitErr *ExitError
			gotAs := errors.As(tt.err, &exitErr)
			if gotAs != tt.wantAs {
				t.Fatalf("errors.As() = %v, want %v", gotAs, tt.wantAs)
			}
			if gotAs && exitErr.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", exitErr.Code, tt.wantCode)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	err := NewUserError(ErrInvalidConfig, "fix the config")
	if err.Code != ExitUser {
		t.Errorf("Code = %d, want %d", err.Code, ExitUser)
	}
	if err.Suggestion != "fix the config" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", New("boom"), ExitUser},
		{"system error", NewSystemError(New("disk"), "check permissions"), ExitSystem},
		{"wrapped exit error", Wrap(NewSystemError(New("disk"), ""), "outer"), ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSuggestionFor(t *testing.T) {
	if got := SuggestionFor(New("plain")); got != "" {
		t.Errorf("SuggestionFor(plain) = %q, want empty", got)
	}
	if got := SuggestionFor(NewConfigError(New("bad"))); got != "Check your claudectl config file" {
		t.Errorf("SuggestionFor(config) = %q", got)
	}
}

func TestWrapAliases(t *testing.T) {
	base := New("base failure")
	wrapped := Wrapf(base, "doing %s", "work")

	if !Is(wrapped, base) {
		t.Error("wrapped error should match base via Is")
	}
	if wrapped.Error() != "doing work: base failure" {
		t.Errorf("wrapped message = %q", wrapped.Error())
	}
}
