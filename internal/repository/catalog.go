package repository

import (
	"context"

	"github.com/trovehq/trove/internal/domain"
)

// Catalog defines the interface for item catalog persistence.
// Catalog rows are immutable reference data; there is no transactional API.
type Catalog interface {
	GetItemByName(ctx context.Context, itemName string) (*domain.Item, error)
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	GetItemsByIDs(ctx context.Context, itemIDs []int) ([]domain.Item, error)
	GetItemsByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.Item, error)
	GetAllItems(ctx context.Context) ([]domain.Item, error)
}
