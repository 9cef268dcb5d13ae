package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/trainerdesk/internal/errors"
)

func TestAs_UnwrapsChain(t *testing.T) {
	base := errors.NewNotAuthenticatedError()
	wrapped := fmt.Errorf("loading clients: %w", base)

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.True(t, errors.HasCode(wrapped, errors.ErrCodeNotAuthenticated))
	assert.False(t, errors.HasCode(fmt.Errorf("plain"), errors.ErrCodeNotAuthenticated))
}

func TestRemoteFetchError_Unwraps(t *testing.T) {
	cause := fmt.Errorf("disk I/O error")
	err := errors.NewRemoteFetchError("failedToLoadClients", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failedToLoadClients", err.Key)
	assert.Contains(t, err.Error(), "REMOTE_FETCH_FAILED")
}

func TestFieldsError(t *testing.T) {
	err := errors.NewFieldsError(errors.FieldErrors{
		"w": errors.ReasonRequiredField,
		"h": errors.ReasonInvalidNumber,
	})

	assert.Equal(t, errors.ErrCodeValidation, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Len(t, err.Fields, 2)
}
