package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService(nil, zap.NewNop(), AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		AdminEmail:        "admin@gym.local",
		AdminPasswordHash: string(hash),
	})
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "Admin@Gym.local", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), resp.ExpiresAt)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@gym.local", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthServiceLoginFailures(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@gym.local", Password: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "other@gym.local", Password: "s3cret!"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "not-an-email", Password: "s3cret!"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	svc.config.AdminPasswordHash = ""
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "admin@gym.local", Password: "s3cret!"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthServiceValidateTokenRejects(t *testing.T) {
	svc := newTestAuthService(t)
	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@gym.local", Password: "s3cret!"})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := *svc
		later.now = func() time.Time { return time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC) }
		_, err := later.ValidateToken(resp.AccessToken)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := *svc
		other.config.AccessTokenSecret = "another-secret"
		_, err := other.ValidateToken(resp.AccessToken)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		issued := svc.now()
		claims := &models.AdminClaims{
			Email: "admin@gym.local",
			Role:  models.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(issued),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})
}
