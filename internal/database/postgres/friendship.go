package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trovehq/trove/internal/domain"
)

// FriendshipRepository implements the friendship repository for PostgreSQL
type FriendshipRepository struct {
	db *pgxpool.Pool
}

// NewFriendshipRepository creates a new FriendshipRepository
func NewFriendshipRepository(db *pgxpool.Pool) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

const friendshipColumns = "friendship_id, requester_id, recipient_id, status, created_at, updated_at"

func scanFriendship(row pgx.Row) (*domain.Friendship, error) {
	var f domain.Friendship
	err := row.Scan(&f.ID, &f.RequesterID, &f.RecipientID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("failed to scan friendship: %w", err)
	}
	return &f, nil
}

// CreateFriendship inserts a pending friendship and fills in the generated ID
// and timestamps. Returns domain.ErrDuplicateRequest when a friendship
// already exists between the pair in either direction.
func (r *FriendshipRepository) CreateFriendship(ctx context.Context, friendship *domain.Friendship) error {
	query := `
		INSERT INTO friendships (requester_id, recipient_id, status)
		VALUES ($1, $2, $3)
		RETURNING friendship_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		friendship.RequesterID, friendship.RecipientID, string(friendship.Status)).
		Scan(&friendship.ID, &friendship.CreatedAt, &friendship.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "idx_friendships_pair") {
			return domain.ErrDuplicateRequest
		}
		return fmt.Errorf("failed to insert friendship: %w", err)
	}
	return nil
}

// GetFriendship retrieves a friendship by ID
func (r *FriendshipRepository) GetFriendship(ctx context.Context, friendshipID string) (*domain.Friendship, error) {
	query := "SELECT " + friendshipColumns + " FROM friendships WHERE friendship_id = $1"
	return scanFriendship(r.db.QueryRow(ctx, query, friendshipID))
}

// UpdateFriendshipStatus moves a friendship to the given state
func (r *FriendshipRepository) UpdateFriendshipStatus(ctx context.Context, friendshipID string, status domain.FriendshipStatus) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE friendships SET status = $1, updated_at = NOW() WHERE friendship_id = $2",
		string(status), friendshipID)
	if err != nil {
		return fmt.Errorf("failed to update friendship status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFriendshipNotFound
	}
	return nil
}

// DeleteFriendship removes a friendship row
func (r *FriendshipRepository) DeleteFriendship(ctx context.Context, friendshipID string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM friendships WHERE friendship_id = $1", friendshipID)
	if err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFriendshipNotFound
	}
	return nil
}

// ListFriendEntries retrieves every friendship involving the account, joined
// with the other party's display name. Accepted entries come first, then
// newest requests.
func (r *FriendshipRepository) ListFriendEntries(ctx context.Context, accountID string) ([]domain.FriendEntry, error) {
	query := `
		SELECT f.friendship_id, a.account_id, a.name, f.status, f.requester_id = $1 AS outgoing
		FROM friendships f
		JOIN accounts a ON a.account_id = CASE
			WHEN f.requester_id = $1 THEN f.recipient_id
			ELSE f.requester_id
		END
		WHERE f.requester_id = $1 OR f.recipient_id = $1
		ORDER BY f.status = 'accepted' DESC, f.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	defer rows.Close()

	entries := []domain.FriendEntry{}
	for rows.Next() {
		var e domain.FriendEntry
		if err := rows.Scan(&e.FriendshipID, &e.AccountID, &e.Name, &e.Status, &e.Outgoing); err != nil {
			return nil, fmt.Errorf("failed to scan friend entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read friend entries: %w", err)
	}
	return entries, nil
}
