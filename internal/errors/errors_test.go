package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewConfigError("invalid window length", nil),
			expected: "[CONFIG] invalid window length",
		},
		{
			name:     "with cause",
			err:      NewStructuralError("row 3 has 5 cells, header has 6", stderrors.New("ragged row")),
			expected: "[STRUCTURAL] row 3 has 5 cells, header has 6: ragged row",
		},
		{
			name:     "storage error with cause",
			err:      NewStorageError("failed to open input", stderrors.New("no such file")),
			expected: "[STORAGE] failed to open input: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("underlying failure")
	err := NewParsingError("failed to decode CSV", cause)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestAppErrorWithContext(t *testing.T) {
	err := NewStructuralError("missing required column", nil).
		WithContext("column", "Date").
		WithContext("row_count", 42)

	assert.Equal(t, "Date", err.Context["column"])
	assert.Equal(t, 42, err.Context["row_count"])
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		errType  ErrorType
		expected bool
	}{
		{
			name:     "matching type",
			err:      NewConfigError("bad token", nil),
			errType:  ErrTypeConfig,
			expected: true,
		},
		{
			name:     "non-matching type",
			err:      NewConfigError("bad token", nil),
			errType:  ErrTypeStructural,
			expected: false,
		},
		{
			name:     "wrapped AppError",
			err:      fmt.Errorf("pipeline failed: %w", NewValidationError("empty dataset")),
			errType:  ErrTypeValidation,
			expected: true,
		},
		{
			name:     "plain error",
			err:      stderrors.New("plain"),
			errType:  ErrTypeConfig,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			errType:  ErrTypeConfig,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsType(tt.err, tt.errType))
		})
	}
}
