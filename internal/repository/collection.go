package repository

import (
	"context"
	"time"

	"github.com/trovehq/trove/internal/domain"
)

// Collection defines the interface for collection persistence
type Collection interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetItemsByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.Item, error)

	BeginTx(ctx context.Context) (CollectionTx, error)
}

// CollectionTx defines the interface for collection transactions.
// The account row lock doubles as the cooldown gate: concurrent collects
// serialize on it, so only one can observe an elapsed cooldown.
type CollectionTx interface {
	Tx
	SetLastCollectedAt(ctx context.Context, accountID string, at time.Time) error
	AwardXP(ctx context.Context, accountID string, delta int64) error
}
