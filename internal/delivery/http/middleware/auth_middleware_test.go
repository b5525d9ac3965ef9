package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LemonMantis5571/historial-medico-api/config"
	"github.com/LemonMantis5571/historial-medico-api/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) (*AuthMiddleware, *jwt.JWTService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})

	return NewAuthMiddleware(jwtService, client), jwtService, mr
}

func withRole(r *http.Request, role string) context.Context {
	return context.WithValue(r.Context(), RoleKey, role)
}

func nextHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	t.Run("valid token with live session", func(t *testing.T) {
		m, jwtService, mr := newTestAuth(t)

		token, tokenID, err := jwtService.GenerateAccessToken(userID, "enfermera1", "doctor")
		require.NoError(t, err)
		mr.Set(fmt.Sprintf("access_token:%s:%s", userID, tokenID), "valid")

		var called bool
		var gotUserID uuid.UUID
		var gotRole string
		handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			gotUserID, _ = GetUserIDFromContext(r.Context())
			gotRole, _ = GetRoleFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, userID, gotUserID)
		assert.Equal(t, "doctor", gotRole)
	})

	t.Run("missing header", func(t *testing.T) {
		m, _, _ := newTestAuth(t)

		var called bool
		rec := httptest.NewRecorder()
		m.Authenticate(nextHandler(&called)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("malformed header", func(t *testing.T) {
		m, _, _ := newTestAuth(t)

		var called bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		m.Authenticate(nextHandler(&called)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("revoked token", func(t *testing.T) {
		m, jwtService, _ := newTestAuth(t)

		// token never stored in redis, so the session does not exist
		token, _, err := jwtService.GenerateAccessToken(userID, "enfermera1", "doctor")
		require.NoError(t, err)

		var called bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		m.Authenticate(nextHandler(&called)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("refresh token rejected on protected routes", func(t *testing.T) {
		m, jwtService, mr := newTestAuth(t)

		token, tokenID, err := jwtService.GenerateRefreshToken(userID, "enfermera1", "doctor")
		require.NoError(t, err)
		mr.Set(fmt.Sprintf("refresh_token:%s:%s", userID, tokenID), "valid")

		var called bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		m.Authenticate(nextHandler(&called)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("allows listed role", func(t *testing.T) {
		var called bool
		handler := RequireRole("admin")(nextHandler(&called))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(withRole(req, "admin"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.True(t, called)
	})

	t.Run("forbids other roles", func(t *testing.T) {
		var called bool
		handler := RequireRole("admin")(nextHandler(&called))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(withRole(req, "patient"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, called)
	})
}
