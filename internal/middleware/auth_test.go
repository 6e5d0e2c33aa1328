package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/jobportal/internal/entity"
	"anoa.com/jobportal/internal/testutil"
	"anoa.com/jobportal/pkg/response"
	"anoa.com/jobportal/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	router    *gin.Engine
	tokens    *token.Manager
	student   *entity.User
	recruiter *entity.User
}

func newEnv(t *testing.T) env {
	t.Helper()
	users := &testutil.UserRepo{S: testutil.NewStore()}
	e := env{
		tokens:    token.NewManager("middleware-secret", time.Hour),
		student:   &entity.User{FullName: "Sam", Email: "sam@uni.test", Role: entity.RoleStudent},
		recruiter: &entity.User{FullName: "Rita", Email: "rita@acme.test", Role: entity.RoleRecruiter},
	}
	require.NoError(t, users.Create(context.Background(), e.student))
	require.NoError(t, users.Create(context.Background(), e.recruiter))

	auth := NewAuthMiddleware(users, e.tokens)
	e.router = gin.New()
	e.router.GET("/private", auth.RequireAuth(), func(c *gin.Context) {
		id, err := response.GetUserID(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"userId": id.String()})
	})
	e.router.GET("/recruiters", auth.RequireAuth(), auth.RequireRole(entity.RoleRecruiter), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"name": user.FullName})
	})
	e.router.GET("/public", auth.OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"signedIn": response.OptionalUserID(c) != nil})
	})
	return e
}

func (e env) issue(t *testing.T, id uuid.UUID) string {
	t.Helper()
	signed, _, err := e.tokens.Issue(id)
	require.NoError(t, err)
	return signed
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireAuth(t *testing.T) {
	e := newEnv(t)

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "please login to access this resource", body["message"])
	})

	t.Run("tampered token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+e.issue(t, e.student.ID)+"x")
		w := httptest.NewRecorder()
		e.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid or expired token", decode(t, w)["message"])
	})

	t.Run("expired token", func(t *testing.T) {
		expired := token.NewManager("middleware-secret", -time.Minute)
		signed, _, err := expired.Issue(e.student.ID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: signed})
		w := httptest.NewRecorder()
		e.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cookie token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: e.issue(t, e.student.ID)})
		w := httptest.NewRecorder()
		e.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, e.student.ID.String(), decode(t, w)["userId"])
	})

	t.Run("query token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private?token="+e.issue(t, e.student.ID), nil)
		w := httptest.NewRecorder()
		e.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	e := newEnv(t)

	t.Run("wrong role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/recruiters", nil)
		req.Header.Set("Authorization", "Bearer "+e.issue(t, e.student.ID))
		w := httptest.NewRecorder()
		e.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "only recruiter accounts can perform this action", decode(t, w)["message"])
	})

	t.Run("matching role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/recruiters", nil)
		req.Header.Set("Authorization", "Bearer "+e.issue(t, e.recruiter.ID))
		w := httptest.NewRecorder()
		e.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Rita", decode(t, w)["name"])
	})

	t.Run("deleted account", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/recruiters", nil)
		req.Header.Set("Authorization", "Bearer "+e.issue(t, uuid.New()))
		w := httptest.NewRecorder()
		e.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	e := newEnv(t)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["signedIn"])

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["signedIn"])

	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer "+e.issue(t, e.student.ID))
	w = httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, true, decode(t, w)["signedIn"])
}
