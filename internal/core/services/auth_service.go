package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

// dummyHash is compared against when the username is unknown so that login
// takes the same time whether or not the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("kanso-dummy-password"), bcrypt.DefaultCost)

type AuthService struct {
	repo domain.AccountRepository
}

func NewAuthService(repo domain.AccountRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Profile  domain.ProfilePatch
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	account, err := domain.NewAccount(uuid.NewString(), input.Username)
	if err != nil {
		return nil, err
	}

	if err := input.Profile.Apply(account); err != nil {
		return nil, err
	}

	if err := account.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("auth service: failed to create account: %w", err)
	}

	return account, nil
}

// Login resolves a username/password pair to the stored account.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	account, lookupErr := s.repo.GetByUsername(ctx, username)
	if lookupErr != nil && !errors.Is(lookupErr, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("auth service: failed to load account: %w", lookupErr)
	}

	hash := dummyHash
	if lookupErr == nil {
		hash = []byte(account.PasswordHash)
	}
	compareErr := bcrypt.CompareHashAndPassword(hash, []byte(password))

	if lookupErr != nil || compareErr != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}
