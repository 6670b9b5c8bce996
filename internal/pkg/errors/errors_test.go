package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	err := ErrRemoteService.WithDetails(map[string]interface{}{
		"status": "REQUEST_DENIED",
	})

	assert.Equal(t, "REQUEST_DENIED", err.Details["status"])
	assert.Empty(t, ErrRemoteService.Details)
	assert.Equal(t, ErrRemoteService.Code, err.Code)
	assert.Equal(t, ErrRemoteService.StatusCode, err.StatusCode)
}

func TestIsMatchesByCode(t *testing.T) {
	detailed := ErrPageTokenNotReady.WithDetails(map[string]interface{}{
		"status": "INVALID_REQUEST",
	})

	assert.True(t, stderrors.Is(detailed, ErrPageTokenNotReady))
	assert.False(t, stderrors.Is(detailed, ErrRemoteService))
}
