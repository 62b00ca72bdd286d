package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx.
// Shared query helpers take it so pool-level and transaction-level reads run
// the same SQL.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation reports whether err is a unique constraint violation,
// optionally on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// ---- Account Helpers ----

const accountColumns = "account_id, name, money, xp, last_collected_at, created_at, updated_at"

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Money,
		&account.XP,
		&account.LastCollectedAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &account, nil
}

func getAccountInternal(ctx context.Context, q querier, accountID string, forUpdate bool) (*domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE account_id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	return scanAccount(q.QueryRow(ctx, query, accountID))
}

func updateAccountMoney(ctx context.Context, q querier, accountID string, money int64) error {
	tag, err := q.Exec(ctx,
		"UPDATE accounts SET money = $1, updated_at = NOW() WHERE account_id = $2",
		money, accountID)
	if err != nil {
		return fmt.Errorf("failed to update account money: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// ---- Inventory Helpers ----

// getInventoryInternal reads the JSONB slot list. A missing row is an empty
// inventory, never an error; it is created lazily on first write.
func getInventoryInternal(ctx context.Context, q querier, accountID string, forUpdate bool) (*domain.Inventory, error) {
	query := "SELECT inventory_data FROM inventories WHERE account_id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}

	var inventoryData []byte
	if err := q.QueryRow(ctx, query, accountID).Scan(&inventoryData); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Inventory{Slots: []domain.InventorySlot{}}, nil
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	var inventory domain.Inventory
	if err := json.Unmarshal(inventoryData, &inventory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}

	if inventory.Slots == nil {
		inventory.Slots = []domain.InventorySlot{}
	}

	return &inventory, nil
}

func updateInventory(ctx context.Context, q querier, accountID string, inventory domain.Inventory) error {
	inventoryJSON, err := json.Marshal(inventory)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	query := `
		INSERT INTO inventories (account_id, inventory_data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (account_id) DO UPDATE
		SET inventory_data = EXCLUDED.inventory_data, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, accountID, inventoryJSON); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}
	return nil
}

// ---- Item Helpers ----

const itemColumns = "item_id, internal_name, display_name, rarity, COALESCE(item_description, '')"

func scanItems(rows pgx.Rows) ([]domain.Item, error) {
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.InternalName, &item.DisplayName, &item.Rarity, &item.Description); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}

func getItemByName(ctx context.Context, q querier, itemName string) (*domain.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE internal_name = $1"
	var item domain.Item
	err := q.QueryRow(ctx, query, itemName).Scan(&item.ID, &item.InternalName, &item.DisplayName, &item.Rarity, &item.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Return nil if item not found
		}
		return nil, fmt.Errorf("failed to get item by name: %w", err)
	}
	return &item, nil
}

func getItemByID(ctx context.Context, q querier, id int) (*domain.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE item_id = $1"
	var item domain.Item
	err := q.QueryRow(ctx, query, id).Scan(&item.ID, &item.InternalName, &item.DisplayName, &item.Rarity, &item.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item by id: %w", err)
	}
	return &item, nil
}

func getItemsByRarity(ctx context.Context, q querier, rarity domain.Rarity) ([]domain.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE rarity = $1 ORDER BY item_id"
	rows, err := q.Query(ctx, query, string(rarity))
	if err != nil {
		return nil, fmt.Errorf("failed to get items by rarity: %w", err)
	}
	return scanItems(rows)
}

// ---- Listing Helpers ----

const listingColumns = "listing_id, seller_id, item_id, quantity, price_per_unit, status, created_at, expires_at"

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var listing domain.Listing
	err := row.Scan(
		&listing.ID,
		&listing.SellerID,
		&listing.ItemID,
		&listing.Quantity,
		&listing.PricePerUnit,
		&listing.Status,
		&listing.CreatedAt,
		&listing.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}
	return &listing, nil
}

func scanListings(rows pgx.Rows) ([]domain.Listing, error) {
	defer rows.Close()

	listings := []domain.Listing{}
	for rows.Next() {
		var listing domain.Listing
		err := rows.Scan(
			&listing.ID,
			&listing.SellerID,
			&listing.ItemID,
			&listing.Quantity,
			&listing.PricePerUnit,
			&listing.Status,
			&listing.CreatedAt,
			&listing.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listings: %w", err)
	}
	return listings, nil
}

// ---- Shared Transaction Base ----

// baseTx implements the locking and mutation primitives every concern
// transaction shares.
type baseTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *baseTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *baseTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetAccountForUpdate retrieves an account with a FOR UPDATE lock
func (t *baseTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccountInternal(ctx, t.tx, accountID, true)
}

// UpdateAccountMoney sets an account's balance
func (t *baseTx) UpdateAccountMoney(ctx context.Context, accountID string, money int64) error {
	return updateAccountMoney(ctx, t.tx, accountID, money)
}

// GetInventoryForUpdate retrieves an inventory with a FOR UPDATE lock
func (t *baseTx) GetInventoryForUpdate(ctx context.Context, accountID string) (*domain.Inventory, error) {
	return getInventoryInternal(ctx, t.tx, accountID, true)
}

// UpdateInventory persists an inventory
func (t *baseTx) UpdateInventory(ctx context.Context, accountID string, inventory domain.Inventory) error {
	return updateInventory(ctx, t.tx, accountID, inventory)
}
