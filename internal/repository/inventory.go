package repository

import (
	"context"

	"github.com/trovehq/trove/internal/domain"
)

// Inventory defines the interface for inventory persistence.
// Inventory rows are removed by the account-deletion cascade, not through
// this interface.
type Inventory interface {
	GetInventory(ctx context.Context, accountID string) (*domain.Inventory, error)
	UpdateInventory(ctx context.Context, accountID string, inventory domain.Inventory) error

	BeginTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx defines the interface for inventory transactions
type InventoryTx interface {
	Tx
}
