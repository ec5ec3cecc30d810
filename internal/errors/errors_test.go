package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/intuition/internal/errors"
)

func TestAs_FindsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("load session: %w", errors.NewNotFoundError("session", "abc"))

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.True(t, errors.IsNotFound(wrapped))
}

func TestAs_PlainError(t *testing.T) {
	_, ok := errors.As(stderrors.New("plain"))
	assert.False(t, ok)
	assert.False(t, errors.IsNotFound(nil))
}

func TestInternalError_HidesCauseFromMessage(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.NewInternalError(cause)

	assert.Equal(t, "internal server error", err.Message)
	assert.Contains(t, err.Error(), "disk full")
	assert.ErrorIs(t, err, cause)
}

func TestValidationError_Message(t *testing.T) {
	err := errors.NewValidationError("index", "must be non-negative")
	assert.Equal(t, "VALIDATION_ERROR: validation failed for index: must be non-negative", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestTimeoutError(t *testing.T) {
	err := errors.NewTimeoutError()
	assert.Equal(t, errors.ErrCodeTimeout, err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
}
