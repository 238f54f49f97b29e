package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "No Event")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := New(CodeConflict, "Event already exists")
	outer := fmt.Errorf("create: %w", inner)
	assert.True(t, HasCode(outer, CodeConflict))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "store get failed")

	assert.True(t, HasCode(err, CodeInternal))
	assert.ErrorIs(t, err, cause)
	// The cause appears in Error() for logs but not in the user message.
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "store get failed", UserMessage(err))
}

func TestUserMessageFallback(t *testing.T) {
	assert.Equal(t, "unexpected error", UserMessage(errors.New("sql: table exploded")))
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{Code("mystery"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ToHTTPStatus(tc.code), "code %s", tc.code)
	}

	assert.Equal(t, http.StatusNotFound, StatusFor(New(CodeNotFound, "x")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("plain")))
}
