package ratelimiter

import (
	"context"
	"testing"
	"time"

	"anoa.com/jobportal/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardWithoutRedisAllows(t *testing.T) {
	for i := 0; i < 3; i++ {
		require.NoError(t, Guard(context.Background(), nil, uuid.New(), "apply", time.Minute))
	}
}

func TestRateLimitErrorUnwraps(t *testing.T) {
	err := &RateLimitError{Message: "slow down", RetryAfter: 3 * time.Second}

	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
	assert.Equal(t, 429, apperror.MapErrorToStatus(err))
	assert.Equal(t, "slow down", err.Error())
}
