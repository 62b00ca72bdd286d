package repository

import (
	"context"

	"github.com/trovehq/trove/internal/domain"
)

// Tx defines the interface for transactional operations shared by every
// concern: account and inventory rows are the resources all engine
// transactions contend on, so locking primitives live here.
type Tx interface {
	GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateAccountMoney(ctx context.Context, accountID string, money int64) error
	GetInventoryForUpdate(ctx context.Context, accountID string) (*domain.Inventory, error)
	UpdateInventory(ctx context.Context, accountID string, inventory domain.Inventory) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
