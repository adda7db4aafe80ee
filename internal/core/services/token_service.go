package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type TokenService struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
	accounts      domain.AccountRepository
	revocations   domain.RevocationStore
}

func NewTokenService(secretKey string, issuer string, tokenDuration time.Duration, accounts domain.AccountRepository, revocations domain.RevocationStore) *TokenService {
	return &TokenService{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		tokenDuration: tokenDuration,
		accounts:      accounts,
		revocations:   revocations,
	}
}

func (s *TokenService) GenerateToken(accountID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("token service: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken checks signature, issuer, expiry and revocation, then makes
// sure the account still exists.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Session, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("token service: revocation lookup failed: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	if _, err := s.accounts.GetByID(ctx, claims.Subject); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("token service: account lookup failed: %w", err)
	}

	return &domain.Session{
		AccountID: claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke blocks the session's token for the rest of its lifetime.
func (s *TokenService) Revoke(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.revocations.Revoke(ctx, session.TokenID, ttl); err != nil {
		return fmt.Errorf("token service: failed to revoke token: %w", err)
	}
	return nil
}
