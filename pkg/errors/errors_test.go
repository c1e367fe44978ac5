package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownItem, "no drag item %q", "apple")

	if err.Code != ErrCodeUnknownItem {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownItem)
	}

	if err.Message != `no drag item "apple"` {
		t.Errorf("Message = %v, want %v", err.Message, `no drag item "apple"`)
	}

	expected := `UNKNOWN_ITEM: no drag item "apple"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeStorage, cause, "save round-1")

	if err.Code != ErrCodeStorage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStorage)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	cfgErr := &ConfigurationError{}
	cfgErr.Add("dragItems[0].id", "is required")

	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUnknownArea, "test"),
			code:     ErrCodeUnknownArea,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUnknownArea, "test"),
			code:     ErrCodeUnknownItem,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeStorage, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeStorage,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("load: %w", New(ErrCodeInvalidFormat, "bad")),
			code:     ErrCodeInvalidFormat,
			expected: true,
		},
		{
			name:     "configuration error",
			err:      fmt.Errorf("create: %w", cfgErr),
			code:     ErrCodeInvalidConfig,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeDestroyed, "test"), ErrCodeDestroyed},
		{"configuration error", &ConfigurationError{Problems: []Problem{{Message: "x"}}}, ErrCodeInvalidConfig},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
		{
			"configuration error",
			&ConfigurationError{Problems: []Problem{{Field: "dropAreas[0].maxCapacity", Message: "must be >= 0"}}},
			"dropAreas[0].maxCapacity: must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfigurationError(t *testing.T) {
	var empty ConfigurationError
	if empty.Err() != nil {
		t.Error("Err() on empty ConfigurationError should be nil")
	}

	var ce ConfigurationError
	ce.Add("dragItems[1].id", "duplicate id %q", "a")
	ce.Add("", "at least one drag item is required")

	err := ce.Err()
	if err == nil {
		t.Fatal("Err() = nil, want error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "INVALID_CONFIG: 2 problems") {
		t.Errorf("Error() = %q, want INVALID_CONFIG prefix with count", msg)
	}
	if !strings.Contains(msg, `dragItems[1].id: duplicate id "a"`) {
		t.Errorf("Error() = %q, missing field problem", msg)
	}

	var target *ConfigurationError
	if !errors.As(err, &target) || len(target.Problems) != 2 {
		t.Errorf("errors.As did not recover both problems: %v", target)
	}
}
