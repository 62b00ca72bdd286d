package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/logger"
	"github.com/trovehq/trove/internal/repository"
)

// Service defines the interface for item catalog lookups
type Service interface {
	GetItemByName(ctx context.Context, itemName string) (*domain.Item, error)
	GetItemByID(ctx context.Context, itemID int) (*domain.Item, error)
	GetItemsByIDs(ctx context.Context, itemIDs []int) ([]domain.Item, error)
	GetItemsByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.Item, error)
	GetAllItems(ctx context.Context) ([]domain.Item, error)
}

type service struct {
	repo  repository.Catalog
	cache *itemCache
}

// NewService creates a new catalog service backed by an LRU cache
func NewService(repo repository.Catalog, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:  repo,
		cache: newItemCache(cacheSize, cacheTTL),
	}
}

// GetItemByName resolves an item by internal name.
// Returns domain.ErrItemNotFound when no such item exists.
func (s *service) GetItemByName(ctx context.Context, itemName string) (*domain.Item, error) {
	if item, ok := s.cache.GetItem(nameKey(itemName)); ok {
		return item, nil
	}

	item, err := s.repo.GetItemByName(ctx, itemName)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get item", "item", itemName, "error", err)
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemName)
	}

	s.cache.SetItem(item)
	return item, nil
}

// GetItemByID resolves an item by catalog ID.
// Returns domain.ErrItemNotFound when no such item exists.
func (s *service) GetItemByID(ctx context.Context, itemID int) (*domain.Item, error) {
	if item, ok := s.cache.GetItem(idKey(itemID)); ok {
		return item, nil
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get item", "item_id", itemID, "error", err)
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrItemNotFound, itemID)
	}

	s.cache.SetItem(item)
	return item, nil
}

// GetItemsByIDs resolves a batch of items. Missing IDs are silently dropped;
// callers that care check the result length.
func (s *service) GetItemsByIDs(ctx context.Context, itemIDs []int) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(itemIDs))
	missing := make([]int, 0)
	for _, id := range itemIDs {
		if item, ok := s.cache.GetItem(idKey(id)); ok {
			items = append(items, *item)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return items, nil
	}

	fetched, err := s.repo.GetItemsByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	for i := range fetched {
		s.cache.SetItem(&fetched[i])
		items = append(items, fetched[i])
	}
	return items, nil
}

// GetItemsByRarity retrieves all items in a rarity tier
func (s *service) GetItemsByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.Item, error) {
	key := "rarity:" + string(rarity)
	if items, ok := s.cache.GetList(key); ok {
		return items, nil
	}

	items, err := s.repo.GetItemsByRarity(ctx, rarity)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by rarity: %w", err)
	}

	s.cache.SetList(key, items)
	return items, nil
}

// GetAllItems retrieves the full catalog
func (s *service) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	const key = "all"
	if items, ok := s.cache.GetList(key); ok {
		return items, nil
	}

	items, err := s.repo.GetAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}

	s.cache.SetList(key, items)
	return items, nil
}
