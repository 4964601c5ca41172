package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cat-exhibition/internal/auth"
	"cat-exhibition/internal/domain"
	"cat-exhibition/internal/repository"
)

// AuthService turns user identities into bearer tokens and back.
type AuthService interface {
	SignUp(ctx context.Context, username, password string) (auth.Pair, error)
	Login(ctx context.Context, username, password string) (auth.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	Authorize(ctx context.Context, accessToken string) (*auth.Claims, error)
	PurgeRevoked(ctx context.Context) (int64, error)
}

type authService struct {
	users  UserService
	tokens repository.TokenRepository
	issuer *auth.Issuer
}

func NewAuthService(users UserService, tokens repository.TokenRepository, issuer *auth.Issuer) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		issuer: issuer,
	}
}

func (s *authService) SignUp(ctx context.Context, username, password string) (auth.Pair, error) {
	user, err := s.users.Register(ctx, username, password)
	if err != nil {
		return auth.Pair{}, err
	}
	return s.issuer.IssuePair(*user)
}

func (s *authService) Login(ctx context.Context, username, password string) (auth.Pair, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return auth.Pair{}, err
	}
	return s.issuer.IssuePair(*user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.verifyRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	return s.issuer.IssueAccess(claims)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.verifyRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	userID, err := claims.UserID()
	if err != nil {
		return err
	}

	err = s.tokens.Revoke(ctx, domain.RevokedToken{
		JTI:       claims.ID,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
	if errors.Is(err, repository.ErrConflict) {
		return ErrInvalidToken
	}
	return err
}

func (s *authService) verifyRefresh(ctx context.Context, refreshToken string) (*auth.Claims, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, invalid("refresh token is required")
	}
	claims, err := s.issuer.Parse(refreshToken, auth.RefreshToken)
	if err != nil {
		return nil, err
	}
	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check refresh token: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) Authorize(_ context.Context, accessToken string) (*auth.Claims, error) {
	return s.issuer.Parse(strings.TrimSpace(accessToken), auth.AccessToken)
}

func (s *authService) PurgeRevoked(ctx context.Context) (int64, error) {
	return s.tokens.PurgeExpired(ctx)
}
