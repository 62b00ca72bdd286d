package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trovehq/trove/internal/domain"
)

// CatalogRepository implements the item catalog repository for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetItemByName retrieves an item by internal name, nil when absent
func (r *CatalogRepository) GetItemByName(ctx context.Context, itemName string) (*domain.Item, error) {
	return getItemByName(ctx, r.db, itemName)
}

// GetItemByID retrieves an item by ID, nil when absent
func (r *CatalogRepository) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	return getItemByID(ctx, r.db, id)
}

// GetItemsByIDs retrieves all items whose IDs appear in itemIDs
func (r *CatalogRepository) GetItemsByIDs(ctx context.Context, itemIDs []int) ([]domain.Item, error) {
	if len(itemIDs) == 0 {
		return []domain.Item{}, nil
	}

	query := "SELECT " + itemColumns + " FROM items WHERE item_id = ANY($1) ORDER BY item_id"
	rows, err := r.db.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by ids: %w", err)
	}
	return scanItems(rows)
}

// GetItemsByRarity retrieves all items of the given rarity tier
func (r *CatalogRepository) GetItemsByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.Item, error) {
	return getItemsByRarity(ctx, r.db, rarity)
}

// GetAllItems retrieves the full catalog
func (r *CatalogRepository) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	query := "SELECT " + itemColumns + " FROM items ORDER BY item_id"
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return scanItems(rows)
}
