// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/kitmi/k-utils/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "value not found",
			wantStr: "[NOT_FOUND] value not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "target is not a mapping",
			wantStr: "[INVALID_INPUT] target is not a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	inner := stderrors.New("permission denied")
	err := errors.Wrap(inner, errors.ErrFileAccess, "cannot open config")

	if err.Wrapped != inner {
		t.Errorf("Wrap() wrapped = %v, want %v", err.Wrapped, inner)
	}

	if !stderrors.Is(err, inner) {
		t.Error("wrapped error should satisfy errors.Is against the inner error")
	}

	want := "[FILE_ACCESS] cannot open config: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapNil(t *testing.T) {
	if err := errors.Wrap(nil, errors.ErrInternal, "ignored"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := errors.Wrapf(nil, errors.ErrInternal, "ignored %d", 1); err != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", err)
	}
}

func TestIsMatchesOnCode(t *testing.T) {
	a := errors.New(errors.ErrExecFailed, "command exited 1")
	b := errors.New(errors.ErrExecFailed, "different message")
	c := errors.New(errors.ErrExecStart, "command exited 1")

	if !stderrors.Is(a, b) {
		t.Error("errors with the same code should match via errors.Is")
	}
	if stderrors.Is(a, c) {
		t.Error("errors with different codes should not match")
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrConfigParse, "bad %s document", "toml")

	if !errors.IsErrorCode(err, errors.ErrConfigParse) {
		t.Error("IsErrorCode should match the error's own code")
	}
	if errors.IsErrorCode(err, errors.ErrConfigLoad) {
		t.Error("IsErrorCode should not match a different code")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrConfigParse) {
		t.Error("IsErrorCode should be false for non-KutilsError errors")
	}

	// Wrapped KutilsErrors are still matchable through the chain
	outer := errors.Wrap(err, errors.ErrConfigLoad, "load failed")
	if !errors.IsErrorCode(outer, errors.ErrConfigLoad) {
		t.Error("IsErrorCode should see the outermost code first")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrBadPattern, "x")); got != errors.ErrBadPattern {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrBadPattern)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrExecFailed, "command failed").
		WithDetail("exitCode", 2).
		WithDetail("command", "ls -l")

	details := errors.GetErrorDetails(err)
	if details["exitCode"] != 2 {
		t.Errorf("detail exitCode = %v, want 2", details["exitCode"])
	}
	if details["command"] != "ls -l" {
		t.Errorf("detail command = %v, want %q", details["command"], "ls -l")
	}

	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("GetErrorDetails should be nil for non-KutilsError errors")
	}
}
