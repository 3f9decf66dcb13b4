package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", Validation("title", "title and summary are required"), http.StatusBadRequest, "title and summary are required"},
		{"authentication", Authentication("Incorrect Password."), http.StatusBadRequest, "Incorrect Password."},
		{"authorization", Forbidden("not allowed"), http.StatusUnauthorized, "not allowed"},
		{"not found", NotFound("article"), http.StatusNotFound, "article not found"},
		{"conflict wrapped", fmt.Errorf("create like: %w", Conflict("already liked")), http.StatusConflict, "create like: already liked"},
		{"unclassified", fmt.Errorf("dial tcp: refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantMsg, httpErr.ToErrorResponse().Message)
		})
	}
}

func TestDomainError_As(t *testing.T) {
	err := fmt.Errorf("update: %w", Validation("rating", "rating must be between 0 and 5"))

	var de *DomainError
	assert.True(t, As(err, &de))
	assert.Equal(t, "rating", de.Field)
	assert.True(t, Is(err, ErrValidation))
	assert.False(t, Is(err, ErrConflict))
}
