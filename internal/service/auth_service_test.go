package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-auth-service"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:         testJWTSecret,
		AccessTokenTTL:    15 * time.Minute,
		RefreshTokenTTL:   24 * time.Hour,
		GoogleClientID:    "client-id",
		GoogleRedirectURL: "http://localhost:8080/api/auth/google/callback",
	}
}

// signTestToken mints a token the way the service does, for feeding back in.
func signTestToken(t *testing.T, userID, tokenType string, ttl time.Duration) string {
	t.Helper()
	claims := &service.Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func TestGetGoogleLoginURL(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(), nil)

	url := svc.GetGoogleLoginURL("random-state")
	assert.Contains(t, url, "state=random-state")
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "accounts.google.com")
}

func TestValidateJWT(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(), nil)

	token := signTestToken(t, "user123", service.TokenTypeAccess, time.Hour)
	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, service.TokenTypeAccess, claims.TokenType)
}

func TestValidateJWTExpired(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(), nil)

	token := signTestToken(t, "user123", service.TokenTypeAccess, -time.Minute)
	_, err := svc.ValidateJWT(context.Background(), token)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(), nil)

	claims := &service.Claims{
		UserID:    "user123",
		TokenType: service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), forged)
	assert.Error(t, err)
}

func TestValidateJWTGarbageInput(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(), nil)

	_, err := svc.ValidateJWT(context.Background(), "not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(), nil)

	refresh := signTestToken(t, "user123", service.TokenTypeRefresh, time.Hour)
	pair, err := svc.RefreshTokens(context.Background(), refresh)
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// The freshly issued access token carries the same user and validates.
	claims, err := svc.ValidateJWT(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, service.TokenTypeAccess, claims.TokenType)
}

func TestRefreshTokensRejectsAccessToken(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(), nil)

	access := signTestToken(t, "user123", service.TokenTypeAccess, time.Hour)
	_, err := svc.RefreshTokens(context.Background(), access)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
}
