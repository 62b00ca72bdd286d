package friends

import (
	"context"
	"errors"
	"fmt"

	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/logger"
	"github.com/trovehq/trove/internal/metrics"
	"github.com/trovehq/trove/internal/repository"
)

// Request outcomes reported on the friend_requests_total metric.
const (
	outcomeSent     = "sent"
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
)

// Service defines the interface for friendship operations
type Service interface {
	Request(ctx context.Context, requesterID, recipientName string) (*domain.Friendship, error)
	Accept(ctx context.Context, accountID, friendshipID string) (*domain.Friendship, error)
	Reject(ctx context.Context, accountID, friendshipID string) error
	CancelRequest(ctx context.Context, accountID, friendshipID string) error
	Remove(ctx context.Context, accountID, friendshipID string) error
	List(ctx context.Context, accountID string) ([]domain.FriendEntry, error)
}

type service struct {
	repo        repository.Friendship
	accountRepo repository.Account
}

// NewService creates a new friends service
func NewService(repo repository.Friendship, accountRepo repository.Account) Service {
	return &service{
		repo:        repo,
		accountRepo: accountRepo,
	}
}

// Request sends a friend request to the account holding recipientName.
// At most one friendship exists per pair regardless of direction, so a
// pending or accepted row in either direction rejects the request.
func (s *service) Request(ctx context.Context, requesterID, recipientName string) (*domain.Friendship, error) {
	log := logger.FromContext(ctx)
	log.Info("Friend request", "requester_id", requesterID, "recipient_name", recipientName)

	recipient, err := s.accountRepo.GetAccountByName(ctx, recipientName)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, recipientName)
		}
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}

	if recipient.ID == requesterID {
		return nil, domain.ErrInvalidTarget
	}

	friendship := &domain.Friendship{
		RequesterID: requesterID,
		RecipientID: recipient.ID,
		Status:      domain.FriendshipPending,
	}
	// The unordered-pair unique index backs the duplicate rule; no
	// pre-check is needed.
	if err := s.repo.CreateFriendship(ctx, friendship); err != nil {
		if errors.Is(err, domain.ErrDuplicateRequest) {
			return nil, err
		}
		log.Error("Failed to create friendship", "error", err)
		return nil, fmt.Errorf("failed to create friendship: %w", err)
	}

	metrics.FriendRequests.WithLabelValues(outcomeSent).Inc()
	return friendship, nil
}

// Accept moves a pending request to accepted. Only the recipient may accept.
func (s *service) Accept(ctx context.Context, accountID, friendshipID string) (*domain.Friendship, error) {
	friendship, err := s.getPendingFor(ctx, accountID, friendshipID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFriendshipStatus(ctx, friendshipID, domain.FriendshipAccepted); err != nil {
		return nil, fmt.Errorf("failed to accept friendship: %w", err)
	}

	metrics.FriendRequests.WithLabelValues(outcomeAccepted).Inc()
	logger.FromContext(ctx).Info("Friend request accepted", "friendship_id", friendshipID)

	friendship.Status = domain.FriendshipAccepted
	return friendship, nil
}

// Reject deletes a pending request. Only the recipient may reject; the
// requester is free to ask again later.
func (s *service) Reject(ctx context.Context, accountID, friendshipID string) error {
	if _, err := s.getPendingFor(ctx, accountID, friendshipID); err != nil {
		return err
	}

	if err := s.repo.DeleteFriendship(ctx, friendshipID); err != nil {
		return fmt.Errorf("failed to reject friendship: %w", err)
	}

	metrics.FriendRequests.WithLabelValues(outcomeRejected).Inc()
	logger.FromContext(ctx).Info("Friend request rejected", "friendship_id", friendshipID)
	return nil
}

// CancelRequest withdraws the caller's own pending request.
func (s *service) CancelRequest(ctx context.Context, accountID, friendshipID string) error {
	friendship, err := s.repo.GetFriendship(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.RequesterID != accountID {
		return domain.ErrNotParticipant
	}
	if friendship.Status != domain.FriendshipPending {
		return fmt.Errorf("%w: request already answered", domain.ErrInvalidInput)
	}

	if err := s.repo.DeleteFriendship(ctx, friendshipID); err != nil {
		return fmt.Errorf("failed to cancel friendship: %w", err)
	}

	logger.FromContext(ctx).Info("Friend request cancelled", "friendship_id", friendshipID)
	return nil
}

// Remove deletes an accepted friendship. Either participant may remove.
func (s *service) Remove(ctx context.Context, accountID, friendshipID string) error {
	friendship, err := s.repo.GetFriendship(ctx, friendshipID)
	if err != nil {
		return err
	}
	if !friendship.Involves(accountID) {
		return domain.ErrNotParticipant
	}
	if friendship.Status != domain.FriendshipAccepted {
		return fmt.Errorf("%w: friendship not accepted", domain.ErrInvalidInput)
	}

	if err := s.repo.DeleteFriendship(ctx, friendshipID); err != nil {
		return fmt.Errorf("failed to remove friendship: %w", err)
	}

	logger.FromContext(ctx).Info("Friendship removed", "friendship_id", friendshipID)
	return nil
}

// List returns every friendship involving the account, accepted first.
func (s *service) List(ctx context.Context, accountID string) ([]domain.FriendEntry, error) {
	entries, err := s.repo.ListFriendEntries(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	return entries, nil
}

// getPendingFor fetches a friendship and checks the caller is the recipient
// of a still-pending request.
func (s *service) getPendingFor(ctx context.Context, accountID, friendshipID string) (*domain.Friendship, error) {
	friendship, err := s.repo.GetFriendship(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if !friendship.Involves(accountID) {
		return nil, domain.ErrNotParticipant
	}
	if friendship.RecipientID != accountID {
		return nil, domain.ErrNotRequestRecipient
	}
	if friendship.Status != domain.FriendshipPending {
		return nil, fmt.Errorf("%w: request already answered", domain.ErrInvalidInput)
	}
	return friendship, nil
}
