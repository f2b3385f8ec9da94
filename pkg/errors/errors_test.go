package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "entity %d has no id", 3)

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != "entity 3 has no id" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
	if got := err.Error(); got != "INVALID_INPUT: entity 3 has no id" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeConnectionFailed, cause, "connect to %s", "bolt://localhost:7687")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeQueryFailed, "boom"), ErrCodeQueryFailed, true},
		{"different code", New(ErrCodeQueryFailed, "boom"), ErrCodeFileNotFound, false},
		{"wrapped in fmt", fmt.Errorf("ctx: %w", New(ErrCodeQueryFailed, "boom")), ErrCodeQueryFailed, true},
		{"plain error", fmt.Errorf("boom"), ErrCodeQueryFailed, false},
		{"nil error", nil, ErrCodeQueryFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeOutputUnwritable, "x")); got != ErrCodeOutputUnwritable {
		t.Errorf("GetCode() = %v", got)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	wrapped := fmt.Errorf("ctx: %w", New(ErrCodeConfigMissingPassword, "x"))
	if got := GetCode(wrapped); got != ErrCodeConfigMissingPassword {
		t.Errorf("GetCode(wrapped) = %v", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeConfigMissingPassword, "NEO4J_PASSWORD environment variable not set")
	if got := UserMessage(err); got != "NEO4J_PASSWORD environment variable not set" {
		t.Errorf("UserMessage() = %q", got)
	}
	if strings.Contains(UserMessage(err), "CONFIG_MISSING_PASSWORD") {
		t.Error("UserMessage() should not include the code")
	}

	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
