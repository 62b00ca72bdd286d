package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/repository"
)

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetInventory retrieves an account's inventory
func (r *InventoryRepository) GetInventory(ctx context.Context, accountID string) (*domain.Inventory, error) {
	return getInventoryInternal(ctx, r.db, accountID, false)
}

// UpdateInventory persists an account's inventory
func (r *InventoryRepository) UpdateInventory(ctx context.Context, accountID string, inventory domain.Inventory) error {
	return updateInventory(ctx, r.db, accountID, inventory)
}

// BeginTx starts a transaction and returns an InventoryTx
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin inventory transaction: %w", err)
	}
	return &inventoryTx{baseTx{tx: tx}}, nil
}

// inventoryTx implements repository.InventoryTx
type inventoryTx struct {
	baseTx
}
