package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trovehq/trove/internal/domain"
)

// AccountRepository implements the account repository for PostgreSQL
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccount inserts a new account together with its empty inventory row.
// Returns domain.ErrNameTaken when the chosen name is already in use.
func (r *AccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	query := `
		INSERT INTO accounts (account_id, name, money, xp, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, query, account.ID, account.Name, account.Money, account.XP).
		Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "accounts_name_key") {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	if _, err := tx.Exec(ctx, "INSERT INTO inventories (account_id) VALUES ($1)", account.ID); err != nil {
		return fmt.Errorf("failed to insert inventory: %w", err)
	}

	return tx.Commit(ctx)
}

// GetAccount retrieves an account by ID
func (r *AccountRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccountInternal(ctx, r.db, accountID, false)
}

// GetAccountByName retrieves an account by display name
func (r *AccountRepository) GetAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE name = $1"
	return scanAccount(r.db.QueryRow(ctx, query, name))
}

// UpdateAccountName renames an account.
// Returns domain.ErrNameTaken when another account holds the name.
func (r *AccountRepository) UpdateAccountName(ctx context.Context, accountID, name string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE accounts SET name = $1, updated_at = NOW() WHERE account_id = $2",
		name, accountID)
	if err != nil {
		if isUniqueViolation(err, "accounts_name_key") {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("failed to update account name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// DeleteAccount removes an account; inventory, listings and friendships
// cascade at the schema level.
func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM accounts WHERE account_id = $1", accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
