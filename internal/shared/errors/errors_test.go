package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewNotFoundError("issue not found", "iss_abc")
	assert.Equal(t, "not_found: issue not found (iss_abc)", err.Error())
	assert.Equal(t, http.StatusNotFound, err.Code)

	err = NewForbiddenError("admin access required")
	assert.Equal(t, "forbidden: admin access required", err.Error())
	assert.Equal(t, http.StatusForbidden, err.Code)
}

func TestTypeChecks_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("mark viewed: %w", NewNotFoundError("issue not found"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsForbiddenError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}
