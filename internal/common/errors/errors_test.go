package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (r *recordingLogger) Error(msg string, fields map[string]interface{}) {
	r.messages = append(r.messages, msg)
	r.fields = append(r.fields, fields)
}

type convertible struct{}

func (convertible) Error() string { return "two problems" }

func (convertible) ToStandardError() *StandardError {
	return NewValidationFailedError("two problems", 2)
}

func TestStandardError_Format(t *testing.T) {
	err := NewProfileNotFoundError("U-404")
	assert.Equal(t, "StandardError[PROFILE_NOT_FOUND]: Profile not found for user ID: U-404", err.Error())
	assert.False(t, err.Retryable)
	assert.False(t, err.Timestamp.IsZero())
}

func TestStandardError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewQuoteNotFoundError(12345))

	assert.True(t, stderrors.Is(wrapped, ErrQuoteNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrProfileNotFound))
	assert.Equal(t, ErrCodeQuoteNotFound, CodeOf(wrapped))
}

func TestStoreUnavailable_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewStoreUnavailableError("redis", "save", cause)

	assert.True(t, err.Retryable)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, "connection refused", err.Details)
}

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeStoreUnavailable, 3},
		{ErrCodeDuplicateQuote, 2},
		{ErrCodeValidationFailed, 0},
		{ErrCodeDivisionByZero, 0},
		{ErrCodeProfileNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetRetryCount(tt.code))
			assert.Equal(t, tt.expected > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeValidationFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidArgument))
	assert.Equal(t, "LOOKUP", GetErrorCategory(ErrCodeProfileNotFound))
	assert.Equal(t, "STORAGE", GetErrorCategory(ErrCodeStoreUnavailable))
	assert.Equal(t, "ARITHMETIC", GetErrorCategory(ErrCodeDivisionByZero))
	assert.Equal(t, "REGRESSION", GetErrorCategory(ErrCodeMalformedFixture))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestErrorHandler_Handle(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		log := &recordingLogger{}
		assert.Nil(t, NewErrorHandler(log).Handle("noop", nil))
		assert.Empty(t, log.messages)
	})

	t.Run("standard error passes through", func(t *testing.T) {
		log := &recordingLogger{}
		original := NewDivisionByZeroError()

		got := NewErrorHandler(log).Handle("divide", fmt.Errorf("calc: %w", original))

		assert.Same(t, original, got)
		require.Len(t, log.fields, 1)
		assert.Equal(t, "divide", log.fields[0]["operation"])
		assert.Equal(t, "ARITHMETIC", log.fields[0]["errorCategory"])
	})

	t.Run("converter is used", func(t *testing.T) {
		got := NewErrorHandler(&recordingLogger{}).Handle("premium", convertible{})
		assert.Equal(t, ErrCodeValidationFailed, got.Code)
		assert.Equal(t, "violations: 2", got.Details)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		cause := stderrors.New("boom")
		got := NewErrorHandler(nil).Handle("unknown", cause)
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.ErrorIs(t, got, cause)
	})
}
