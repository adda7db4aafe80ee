package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type AccountService struct {
	repo domain.AccountRepository
}

func NewAccountService(repo domain.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("account service: load account: %w", err)
	}
	return account, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, patch domain.ProfilePatch) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("account service: load account: %w", err)
	}

	if err := patch.Apply(account); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProfile(ctx, account); err != nil {
		return nil, fmt.Errorf("account service: failed to update profile: %w", err)
	}

	return account, nil
}
