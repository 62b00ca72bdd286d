package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/logger"
	"github.com/trovehq/trove/internal/metrics"
	"github.com/trovehq/trove/internal/repository"
	"github.com/trovehq/trove/internal/utils"
)

// maxNameAttempts bounds retries when a generated name collides.
// The name space holds ~900k combinations, so collisions are rare.
const maxNameAttempts = 5

// LoginResult contains the result of a login
type LoginResult struct {
	Account *domain.Account `json:"account"`
	Created bool            `json:"created"`
}

// Service defines the interface for account operations
type Service interface {
	Login(ctx context.Context, accountID string) (*LoginResult, error)
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	Rename(ctx context.Context, accountID, newName string) (*domain.Account, error)
	Delete(ctx context.Context, accountID string) error
}

type service struct {
	repo repository.Account
	rnd  func(n int) int // For name generation
}

// NewService creates a new account service
func NewService(repo repository.Account) Service {
	return &service{
		repo: repo,
		rnd:  func(n int) int { return utils.RandomInt(0, n-1) },
	}
}

// Login fetches the account for an identity, creating it on first sight.
// New accounts get a generated name and the starting balance.
func (s *service) Login(ctx context.Context, accountID string) (*LoginResult, error) {
	log := logger.FromContext(ctx)

	account, err := s.repo.GetAccount(ctx, accountID)
	if err == nil {
		return &LoginResult{Account: account}, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		log.Error("Failed to get account", "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		account = &domain.Account{
			ID:    accountID,
			Name:  randomName(s.rnd),
			Money: domain.StartingMoney,
		}
		err = s.repo.CreateAccount(ctx, account)
		if err == nil {
			log.Info("Account created", "account_id", accountID, "name", account.Name)
			metrics.AccountsCreated.Inc()
			return &LoginResult{Account: account, Created: true}, nil
		}
		if !errors.Is(err, domain.ErrNameTaken) {
			log.Error("Failed to create account", "error", err)
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to create account: %w", err)
}

// Get retrieves an account by ID
func (s *service) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// Rename changes an account's display name.
// Returns domain.ErrSameName when the name is unchanged and
// domain.ErrNameTaken when another account holds it.
func (s *service) Rename(ctx context.Context, accountID, newName string) (*domain.Account, error) {
	log := logger.FromContext(ctx)

	newName = strings.TrimSpace(newName)
	if newName == "" || len(newName) > domain.MaxAccountNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", domain.ErrInvalidInput, domain.MaxAccountNameLength)
	}

	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account.Name == newName {
		return nil, domain.ErrSameName
	}

	if err := s.repo.UpdateAccountName(ctx, accountID, newName); err != nil {
		if errors.Is(err, domain.ErrNameTaken) || errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		log.Error("Failed to rename account", "error", err)
		return nil, fmt.Errorf("failed to rename account: %w", err)
	}

	log.Info("Account renamed", "account_id", accountID, "name", newName)
	account.Name = newName
	return account, nil
}

// Delete removes an account and all dependent state
func (s *service) Delete(ctx context.Context, accountID string) error {
	log := logger.FromContext(ctx)

	if err := s.repo.DeleteAccount(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}
		log.Error("Failed to delete account", "error", err)
		return fmt.Errorf("failed to delete account: %w", err)
	}

	log.Info("Account deleted", "account_id", accountID)
	return nil
}
