package middleware

import (
	"errors"
	"strings"

	"anoa.com/jobportal/internal/entity"
	userRepo "anoa.com/jobportal/internal/modules/user/repository"
	"anoa.com/jobportal/pkg/apperror"
	"anoa.com/jobportal/pkg/response"
	"anoa.com/jobportal/pkg/token"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	tokenCookie = "token"
	userKey     = "user"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	tokens   *token.Manager
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RequireAuth verifies the session token and stores the subject as "user_id".
// The token is read from the "token" cookie, then an Authorization Bearer
// header, then a "token" query parameter (websocket clients).
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Abort(c, apperror.ErrUnauthenticated)
			return
		}

		userID, err := m.tokens.Parse(tokenString)
		if err != nil {
			response.Abort(c, apperror.ErrInvalidToken)
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuth sets "user_id" when a valid token is present and never aborts.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if userID, err := m.tokens.Parse(tokenString); err == nil {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth. It loads the caller and rejects
// roles outside the allowed set.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := response.GetUserID(c)
		if err != nil {
			response.Abort(c, err)
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Abort(c, apperror.ErrInvalidToken)
				return
			}
			response.Abort(c, err)
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Set(userKey, user)
				c.Next()
				return
			}
		}

		response.Abort(c, apperror.ErrRoleNotAllowed.WithMessage(
			"only "+strings.Join(roles, " or ")+" accounts can perform this action"))
	}
}

// CurrentUser returns the user loaded by RequireRole, if any.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(tokenCookie); err == nil && cookie != "" {
		return cookie
	}

	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	return c.Query("token")
}
