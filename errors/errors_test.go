package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection timeout", ErrConnectionTimeout, true},
		{"connection lost", ErrConnectionLost, true},
		{"context deadline", context.DeadlineExceeded, true},
		{"unknown option", ErrUnknownOption, false},
		{"invalid config", ErrInvalidConfig, false},
		{"wrapped transient", WrapTransient(ErrConnectionLost, "Client", "Send", "write frame"), true},
		{"wrapped invalid", WrapInvalid(ErrTypeMismatch, "Options", "Set", "assign value"), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsTransient(test.err); got != test.expected {
				t.Errorf("IsTransient(%v) = %v, want %v", test.err, got, test.expected)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"unknown option", ErrUnknownOption, true},
		{"type mismatch", ErrTypeMismatch, true},
		{"invalid data", ErrInvalidData, true},
		{"connection lost", ErrConnectionLost, false},
		{"wrapped invalid", WrapInvalid(ErrUnknownOption, "Options", "Set", "lookup key"), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsInvalid(test.err); got != test.expected {
				t.Errorf("IsInvalid(%v) = %v, want %v", test.err, got, test.expected)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"invalid config", ErrInvalidConfig, true},
		{"missing config", ErrMissingConfig, true},
		{"unknown option", ErrUnknownOption, false},
		{"wrapped fatal", WrapFatal(ErrMissingConfig, "Server", "Start", "read options"), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsFatal(test.err); got != test.expected {
				t.Errorf("IsFatal(%v) = %v, want %v", test.err, got, test.expected)
			}
		})
	}
}

func TestWrap_Format(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(base, "MessageGuard", "Serialize", "encode message")

	expected := "MessageGuard.Serialize: encode message failed: boom"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, base) {
		t.Error("wrapped error should match base via errors.Is")
	}
}

func TestWrap_NilPassthrough(t *testing.T) {
	if Wrap(nil, "C", "M", "a") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if WrapTransient(nil, "C", "M", "a") != nil {
		t.Error("WrapTransient(nil) should return nil")
	}
	if WrapInvalid(nil, "C", "M", "a") != nil {
		t.Error("WrapInvalid(nil) should return nil")
	}
	if WrapFatal(nil, "C", "M", "a") != nil {
		t.Error("WrapFatal(nil) should return nil")
	}
}

func TestClassifiedError_Unwrap(t *testing.T) {
	base := ErrMessageTooLarge
	err := WrapInvalid(fmt.Errorf("context: %w", base), "MessageGuard", "Serialize", "check size")

	var ce *ClassifiedError
	if !errors.As(err, &ce) {
		t.Fatal("expected ClassifiedError in chain")
	}
	if ce.Component != "MessageGuard" {
		t.Errorf("expected component MessageGuard, got %s", ce.Component)
	}
	if !errors.Is(err, base) {
		t.Error("classified error should unwrap to base sentinel")
	}
}

func TestGetClass(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"fatal sentinel", ErrInvalidConfig, ErrorFatal},
		{"invalid sentinel", ErrUnknownOption, ErrorInvalid},
		{"transient sentinel", ErrConnectionTimeout, ErrorTransient},
		{"plain error defaults to transient", errors.New("mystery"), ErrorTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := GetClass(test.err); got != test.expected {
				t.Errorf("GetClass(%v) = %v, want %v", test.err, got, test.expected)
			}
		})
	}
}
