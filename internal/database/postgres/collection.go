package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/repository"
)

// CollectionRepository implements the collection repository for PostgreSQL
type CollectionRepository struct {
	db *pgxpool.Pool
}

// NewCollectionRepository creates a new CollectionRepository
func NewCollectionRepository(db *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// GetAccount retrieves an account by ID
func (r *CollectionRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccountInternal(ctx, r.db, accountID, false)
}

// GetItemsByRarity retrieves all items of the given rarity tier
func (r *CollectionRepository) GetItemsByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.Item, error) {
	return getItemsByRarity(ctx, r.db, rarity)
}

// BeginTx starts a transaction and returns a CollectionTx
func (r *CollectionRepository) BeginTx(ctx context.Context) (repository.CollectionTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin collection transaction: %w", err)
	}
	return &collectionTx{baseTx{tx: tx}}, nil
}

// collectionTx implements repository.CollectionTx
type collectionTx struct {
	baseTx
}

// SetLastCollectedAt records the time of the account's latest collection
func (t *collectionTx) SetLastCollectedAt(ctx context.Context, accountID string, at time.Time) error {
	tag, err := t.tx.Exec(ctx,
		"UPDATE accounts SET last_collected_at = $1, updated_at = NOW() WHERE account_id = $2",
		at, accountID)
	if err != nil {
		return fmt.Errorf("failed to set last collected at: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// AwardXP adds delta to the account's experience total
func (t *collectionTx) AwardXP(ctx context.Context, accountID string, delta int64) error {
	tag, err := t.tx.Exec(ctx,
		"UPDATE accounts SET xp = xp + $1, updated_at = NOW() WHERE account_id = $2",
		delta, accountID)
	if err != nil {
		return fmt.Errorf("failed to award xp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
