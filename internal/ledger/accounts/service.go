package accounts

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Account, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a chart-of-accounts node. BalanceType is taken as given:
// the convention (DEBIT for ASSET/EXPENSE, CREDIT otherwise) is the caller's
// responsibility, matching NormalSide.
func (s *Service) Create(ctx context.Context, account Account) (Account, error) {
	if account.ID == "" {
		return Account{}, errors.New("accounts: id required")
	}
	if account.Name == "" {
		return Account{}, errors.New("accounts: name required")
	}
	if !account.Type.Valid() {
		return Account{}, errors.New("accounts: unknown account type")
	}
	if !account.BalanceType.Valid() {
		return Account{}, errors.New("accounts: unknown balance type")
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return Account{}, err
	}
	return account, nil
}
