package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/LemonMantis5571/historial-medico-api/config"
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
	"github.com/LemonMantis5571/historial-medico-api/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthUsecase, *fakeUserRepo, *jwt.JWTService, *miniredis.Miniredis) {
	t.Helper()

	db, _ := newTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})

	userRepo := newFakeUserRepo()
	u := NewAuthUsecase(db, newTestLogger(), userRepo, jwtService, client, &fakeAuditService{})

	return u, userRepo, jwtService, mr
}

func newActiveUser(t *testing.T, username, password string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &entity.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hash),
		Role:     entity.RoleDoctor,
		IsActive: true,
	}
}

func TestLogin(t *testing.T) {
	t.Run("success stores session and returns token pair", func(t *testing.T) {
		u, userRepo, jwtService, mr := newAuthFixture(t)
		user := newActiveUser(t, "doctor1", "secreto123")
		userRepo.users[user.ID] = user

		resp, err := u.Login(context.Background(), &dto.LoginRequest{Username: "doctor1", Password: "secreto123"})

		require.NoError(t, err)
		assert.Equal(t, "doctor1", resp.User.Username)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		assert.Equal(t, int64((15 * time.Minute).Seconds()), resp.Tokens.ExpiresIn)

		claims, err := jwtService.ValidateToken(resp.Tokens.AccessToken)
		require.NoError(t, err)
		assert.True(t, mr.Exists(fmt.Sprintf("access_token:%s:%s", user.ID, claims.TokenID)))
	})

	t.Run("wrong password", func(t *testing.T) {
		u, userRepo, _, _ := newAuthFixture(t)
		user := newActiveUser(t, "doctor1", "secreto123")
		userRepo.users[user.ID] = user

		_, err := u.Login(context.Background(), &dto.LoginRequest{Username: "doctor1", Password: "incorrecta"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		u, _, _, _ := newAuthFixture(t)

		_, err := u.Login(context.Background(), &dto.LoginRequest{Username: "nadie", Password: "x"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		u, userRepo, _, _ := newAuthFixture(t)
		user := newActiveUser(t, "doctor1", "secreto123")
		user.IsActive = false
		userRepo.users[user.ID] = user

		_, err := u.Login(context.Background(), &dto.LoginRequest{Username: "doctor1", Password: "secreto123"})

		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("rotates the refresh token", func(t *testing.T) {
		u, userRepo, jwtService, mr := newAuthFixture(t)
		user := newActiveUser(t, "doctor1", "secreto123")
		userRepo.users[user.ID] = user

		login, err := u.Login(context.Background(), &dto.LoginRequest{Username: "doctor1", Password: "secreto123"})
		require.NoError(t, err)

		oldClaims, err := jwtService.ValidateToken(login.Tokens.RefreshToken)
		require.NoError(t, err)
		oldKey := fmt.Sprintf("refresh_token:%s:%s", user.ID, oldClaims.TokenID)
		require.True(t, mr.Exists(oldKey))

		refreshed, err := u.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.Tokens.RefreshToken})

		require.NoError(t, err)
		assert.NotEqual(t, login.Tokens.RefreshToken, refreshed.RefreshToken)
		assert.False(t, mr.Exists(oldKey), "rotated refresh token must be revoked")

		// the rotated token cannot be replayed
		_, err = u.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.Tokens.RefreshToken})
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("access token rejected", func(t *testing.T) {
		u, userRepo, _, _ := newAuthFixture(t)
		user := newActiveUser(t, "doctor1", "secreto123")
		userRepo.users[user.ID] = user

		login, err := u.Login(context.Background(), &dto.LoginRequest{Username: "doctor1", Password: "secreto123"})
		require.NoError(t, err)

		_, err = u.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.Tokens.AccessToken})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		u, _, _, _ := newAuthFixture(t)

		_, err := u.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "no-es-un-jwt"})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestLogout(t *testing.T) {
	u, userRepo, jwtService, mr := newAuthFixture(t)
	user := newActiveUser(t, "doctor1", "secreto123")
	userRepo.users[user.ID] = user

	login, err := u.Login(context.Background(), &dto.LoginRequest{Username: "doctor1", Password: "secreto123"})
	require.NoError(t, err)

	accessClaims, err := jwtService.ValidateToken(login.Tokens.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := jwtService.ValidateToken(login.Tokens.RefreshToken)
	require.NoError(t, err)

	accessKey := fmt.Sprintf("access_token:%s:%s", user.ID, accessClaims.TokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", user.ID, refreshClaims.TokenID)
	require.True(t, mr.Exists(accessKey))
	require.True(t, mr.Exists(refreshKey))

	require.NoError(t, u.Logout(context.Background(), accessClaims.TokenID, refreshClaims.TokenID))

	assert.False(t, mr.Exists(accessKey))
	assert.False(t, mr.Exists(refreshKey))
}

func TestGetCurrentUser(t *testing.T) {
	u, userRepo, _, _ := newAuthFixture(t)
	user := newActiveUser(t, "doctor1", "secreto123")
	userRepo.users[user.ID] = user

	resp, err := u.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "doctor1", resp.Username)

	_, err = u.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
