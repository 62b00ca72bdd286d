package repository

import (
	"context"

	"github.com/trovehq/trove/internal/domain"
)

// Friendship defines the interface for friendship persistence.
// Friendship mutations touch a single row, so there is no transactional API;
// the unique index on the unordered participant pair backs duplicate checks.
type Friendship interface {
	CreateFriendship(ctx context.Context, friendship *domain.Friendship) error
	GetFriendship(ctx context.Context, friendshipID string) (*domain.Friendship, error)
	UpdateFriendshipStatus(ctx context.Context, friendshipID string, status domain.FriendshipStatus) error
	DeleteFriendship(ctx context.Context, friendshipID string) error
	ListFriendEntries(ctx context.Context, accountID string) ([]domain.FriendEntry, error)
}
