package response

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"anoa.com/jobportal/pkg/apperror"
	"anoa.com/jobportal/pkg/ratelimiter"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, apperror.ErrUnauthenticated
	}

	raw, ok := userIDStr.(string)
	if !ok {
		return uuid.Nil, apperror.ErrInvalidToken
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.ErrInvalidToken
	}

	return userID, nil
}

// OptionalUserID returns the caller's ID when a valid token was presented.
func OptionalUserID(c *gin.Context) *uuid.UUID {
	userID, err := GetUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}

// Success writes {success: true, message, ...payload}.
func Success(c *gin.Context, code int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(code, body)
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	var rateLimitErr *ratelimiter.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
	}

	code := apperror.MapErrorToStatus(err)
	message := err.Error()

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error] %s %s: %v", c.Request.Method, c.FullPath(), err)
		message = "internal server error"
	}

	c.JSON(code, gin.H{"success": false, "message": message})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	ResponseError(c, err)
	c.Abort()
}
