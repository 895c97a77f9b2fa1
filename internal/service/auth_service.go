package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Claims are the JWT claims issued by this service.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair carries an access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles Google sign-in and JWT lifecycle.
type AuthService interface {
	// GetGoogleLoginURL returns the consent-screen URL for the given state.
	GetGoogleLoginURL(state string) string

	// HandleGoogleCallback exchanges the code, upserts the user and issues tokens.
	HandleGoogleCallback(ctx context.Context, code string) (*TokenPair, *domain.User, error)

	// ValidateJWT parses and verifies a token, returning its claims.
	ValidateJWT(ctx context.Context, tokenString string) (*Claims, error)

	// RefreshTokens issues a new pair from a valid refresh token.
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authService struct {
	cfg      config.AuthConfig
	oauth    *oauth2.Config
	userRepo domain.UserRepository
}

// NewAuthService creates the auth service from configuration.
func NewAuthService(cfg config.AuthConfig, userRepo domain.UserRepository) AuthService {
	return &authService{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userRepo: userRepo,
	}
}

func (s *authService) GetGoogleLoginURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *authService) HandleGoogleCallback(ctx context.Context, code string) (*TokenPair, *domain.User, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, domain.NewUnauthorizedError(fmt.Sprintf("failed to exchange OAuth code: %v", err))
	}

	user, err := s.fetchGoogleProfile(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.UpsertUser(ctx, user); err != nil {
		return nil, nil, domain.NewInternalError("failed to upsert user", err)
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	logger.Get().Info("User signed in", zap.String("user_id", user.ID))
	return pair, user, nil
}

func (s *authService) fetchGoogleProfile(ctx context.Context, token *oauth2.Token) (*domain.User, error) {
	client := s.oauth.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, domain.NewInternalError("failed to fetch Google profile", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewInternalError("failed to read Google profile", err)
	}

	var profile struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, domain.NewInternalError("failed to decode Google profile", err)
	}
	if profile.Email == "" {
		return nil, domain.NewUnauthorizedError("Google profile has no email")
	}

	return &domain.User{
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
	}, nil
}

func (s *authService) ValidateJWT(_ context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, domain.NewUnauthorizedError(fmt.Sprintf("invalid token: %v", err))
	}
	if !token.Valid {
		return nil, domain.NewUnauthorizedError("invalid token")
	}
	return claims, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateJWT(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("token is not a refresh token")
	}
	return s.issueTokens(claims.UserID)
}

func (s *authService) issueTokens(userID string) (*TokenPair, error) {
	access, err := s.signToken(userID, TokenTypeAccess, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign access token", err)
	}
	refresh, err := s.signToken(userID, TokenTypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign refresh token", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) signToken(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
