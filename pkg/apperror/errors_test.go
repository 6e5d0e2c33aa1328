package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"catalog not found", ErrJobNotFound, http.StatusNotFound},
		{"wrapped catalog", fmt.Errorf("apply: %w", ErrDuplicateApplication), http.StatusBadRequest},
		{"credential mismatch stays 400", ErrInvalidCredentials, http.StatusBadRequest},
		{"missing token", ErrUnauthenticated, http.StatusUnauthorized},
		{"ownership", ErrNotOwner, http.StatusForbidden},
		{"bare kind", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"bare conflict", ErrConflict, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatus(tc.err))
		})
	}
}

func TestWithMessageKeepsIdentity(t *testing.T) {
	err := ErrMissingField.WithMessage("title is required")

	assert.Equal(t, "title is required", err.Error())
	assert.ErrorIs(t, err, ErrMissingField)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatus(err))
}

func TestCatalogKinds(t *testing.T) {
	assert.ErrorIs(t, ErrDuplicateCompany, ErrConflict)
	assert.ErrorIs(t, ErrNoJobsFound, ErrNotFound)
	assert.ErrorIs(t, ErrInvalidToken, ErrUnauthorized)
	assert.NotErrorIs(t, ErrJobNotFound, ErrApplicationNotFound)
}
