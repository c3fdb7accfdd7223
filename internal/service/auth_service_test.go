package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/octa-services/plant-tracker/internal/models"
	"github.com/octa-services/plant-tracker/pkg/config"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "plant-tracker",
		Accounts: []config.StaffAccount{
			{Username: "ahassan", PasswordHash: string(hash), DisplayName: "A. Hassan"},
			{Username: "supervisor", PasswordHash: string(hash)},
		},
	})
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc := newTestAuthService(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "AHassan", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, "A. Hassan", res.Staff.DisplayName)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ahassan", claims.Username)
	assert.Equal(t, "plant-tracker", claims.Issuer)
}

func TestAuthServiceDisplayNameFallsBackToUsername(t *testing.T) {
	svc := newTestAuthService(t)
	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "supervisor", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "supervisor", res.Staff.DisplayName)
}

func TestAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ahassan", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "nobody", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "ahassan"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsForeignSignature(t *testing.T) {
	svc := newTestAuthService(t)
	claims := &models.StaffClaims{
		Username: "ahassan",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestAuthService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "ahassan", Password: "password"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.AccessToken)
	assert.Error(t, err)
}
