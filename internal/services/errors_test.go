// file: internal/services/errors_test.go
package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetServiceErrorPassesThrough(t *testing.T) {
	original := NewNotFoundError("user not found")

	extracted := GetServiceError(original)
	assert.Same(t, original, extracted)
}

func TestGetServiceErrorWrapsPlainErrors(t *testing.T) {
	cause := errors.New("connection refused")

	extracted := GetServiceError(cause)
	require.NotNil(t, extracted)
	assert.Equal(t, "INTERNAL_ERROR", extracted.Type)
	assert.Equal(t, "connection refused", extracted.Message)
	assert.Equal(t, http.StatusInternalServerError, extracted.GetStatusCode())
	assert.ErrorIs(t, extracted, cause)
}

func TestErrorTypePredicates(t *testing.T) {
	assert.True(t, IsNotFoundError(NewNotFoundError("gone")))
	assert.False(t, IsNotFoundError(NewValidationError("bad input", nil)))
	assert.True(t, IsValidationError(NewValidationError("bad input", nil)))
	assert.False(t, IsValidationError(errors.New("plain")))
}
