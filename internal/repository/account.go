package repository

import (
	"context"

	"github.com/trovehq/trove/internal/domain"
)

// Account defines the interface for account persistence.
// Collection bookkeeping (xp, last collected at) is written through
// CollectionTx so it commits with the granted item.
type Account interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByName(ctx context.Context, name string) (*domain.Account, error)
	UpdateAccountName(ctx context.Context, accountID, name string) error
	DeleteAccount(ctx context.Context, accountID string) error
}
