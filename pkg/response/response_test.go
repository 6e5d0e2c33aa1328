package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/jobportal/pkg/apperror"
	"anoa.com/jobportal/pkg/ratelimiter"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handler(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccessMergesPayload(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		Success(c, http.StatusCreated, "company registered successfully", gin.H{"company": gin.H{"name": "Acme"}})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "company registered successfully", body["message"])
	assert.Equal(t, "Acme", body["company"].(map[string]any)["name"])
}

func TestSuccessOmitsEmptyMessage(t *testing.T) {
	_, body := render(t, func(c *gin.Context) {
		Success(c, http.StatusOK, "", gin.H{"jobs": []string{}})
	})

	_, hasMessage := body["message"]
	assert.False(t, hasMessage)
}

func TestResponseError(t *testing.T) {
	t.Run("catalog error keeps its message", func(t *testing.T) {
		w, body := render(t, func(c *gin.Context) { ResponseError(c, apperror.ErrJobNotFound) })

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "job not found", body["message"])
	})

	t.Run("internal detail is hidden", func(t *testing.T) {
		w, body := render(t, func(c *gin.Context) { ResponseError(c, errors.New("pq: connection refused")) })

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", body["message"])
	})

	t.Run("rate limit sets Retry-After", func(t *testing.T) {
		w, _ := render(t, func(c *gin.Context) {
			ResponseError(c, &ratelimiter.RateLimitError{Message: "slow down", RetryAfter: 4 * time.Second})
		})

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "4", w.Header().Get("Retry-After"))
	})
}
