package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    *AppError
		kind   Kind
		status int
	}{
		{"validation", NewValidation("Validation Error"), KindValidation, http.StatusBadRequest},
		{"unauthenticated", NewUnauthenticated("nope"), KindUnauthenticated, http.StatusUnauthorized},
		{"not found", NewNotFound("Genre not found"), KindNotFound, http.StatusNotFound},
		{"conflict", NewConflict("User already exists"), KindConflict, http.StatusConflict},
		{"internal", NewInternal(stderrors.New("boom")), KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.err.Kind)
			assert.Equal(t, tc.status, tc.err.HTTPStatus)
		})
	}
}

func TestValidationFields(t *testing.T) {
	err := NewValidation("Validation Error",
		FieldError{Field: "email", Message: "Invalid email address"},
		FieldError{Field: "password", Message: "password must be at least 8 characters"},
	)

	require.Len(t, err.Fields, 2)
	assert.Equal(t, "email", err.Fields[0].Field)
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	inner := NewNotFound("Sheet not found")
	wrapped := fmt.Errorf("handling request: %w", inner)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, appErr.Kind)

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestWithCausePreservesMessage(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewConflict("Level name already exists").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Level name already exists")
	assert.Contains(t, err.Error(), "connection refused")
}
