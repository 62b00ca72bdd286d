package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/trovehq/trove/internal/catalog"
	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/logger"
	"github.com/trovehq/trove/internal/repository"
	"github.com/trovehq/trove/internal/utils"
)

// Entry is one inventory line joined with catalog data
type Entry struct {
	ItemID       int           `json:"item_id"`
	InternalName string        `json:"internal_name"`
	DisplayName  string        `json:"display_name"`
	Rarity       domain.Rarity `json:"rarity"`
	Quantity     int           `json:"quantity"`
}

// Service defines the interface for inventory operations
type Service interface {
	GetInventory(ctx context.Context, accountID string) ([]Entry, error)
	AddQuantity(ctx context.Context, accountID, itemName string, quantity int) error
	RemoveQuantity(ctx context.Context, accountID, itemName string, quantity int) error
	Transfer(ctx context.Context, fromID, toID, itemName string, quantity int) error
}

type service struct {
	repo        repository.Inventory
	accountRepo repository.Account
	catalogSvc  catalog.Service
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory, accountRepo repository.Account, catalogSvc catalog.Service) Service {
	return &service{
		repo:        repo,
		accountRepo: accountRepo,
		catalogSvc:  catalogSvc,
	}
}

func validateQuantity(quantity int) error {
	if quantity < 1 || quantity > domain.MaxTransactionQuantity {
		return fmt.Errorf("%w: quantity must be 1-%d", domain.ErrInvalidInput, domain.MaxTransactionQuantity)
	}
	return nil
}

// GetInventory returns the account's holdings joined with catalog data,
// sorted by item ID for stable presentation.
func (s *service) GetInventory(ctx context.Context, accountID string) ([]Entry, error) {
	if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	inventory, err := s.repo.GetInventory(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	itemIDs := make([]int, 0, len(inventory.Slots))
	for _, slot := range inventory.Slots {
		itemIDs = append(itemIDs, slot.ItemID)
	}

	items, err := s.catalogSvc.GetItemsByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]domain.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	entries := make([]Entry, 0, len(inventory.Slots))
	for _, slot := range inventory.Slots {
		item, ok := byID[slot.ItemID]
		if !ok {
			// Catalog row gone; skip rather than fail the whole view.
			logger.FromContext(ctx).Warn("Inventory references unknown item", "item_id", slot.ItemID)
			continue
		}
		entries = append(entries, Entry{
			ItemID:       item.ID,
			InternalName: item.InternalName,
			DisplayName:  item.DisplayName,
			Rarity:       item.Rarity,
			Quantity:     slot.Quantity,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ItemID < entries[j].ItemID })
	return entries, nil
}

// AddQuantity merges quantity of the named item into the account's inventory
func (s *service) AddQuantity(ctx context.Context, accountID, itemName string, quantity int) error {
	log := logger.FromContext(ctx)

	if err := validateQuantity(quantity); err != nil {
		return err
	}

	item, err := s.catalogSvc.GetItemByName(ctx, itemName)
	if err != nil {
		return err
	}
	if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	inventory, err := tx.GetInventoryForUpdate(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get inventory: %w", err)
	}

	utils.AddToSlot(inventory, item.ID, quantity)

	if err := tx.UpdateInventory(ctx, accountID, *inventory); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Items added", "account_id", accountID, "item", itemName, "quantity", quantity)
	return nil
}

// RemoveQuantity removes quantity of the named item from the account's
// inventory. The whole call fails when the account holds less than quantity.
func (s *service) RemoveQuantity(ctx context.Context, accountID, itemName string, quantity int) error {
	log := logger.FromContext(ctx)

	if err := validateQuantity(quantity); err != nil {
		return err
	}

	item, err := s.catalogSvc.GetItemByName(ctx, itemName)
	if err != nil {
		return err
	}
	if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	inventory, err := tx.GetInventoryForUpdate(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get inventory: %w", err)
	}

	if err := utils.RemoveFromSlot(inventory, item.ID, quantity); err != nil {
		return fmt.Errorf("%w: %s", err, itemName)
	}

	if err := tx.UpdateInventory(ctx, accountID, *inventory); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Items removed", "account_id", accountID, "item", itemName, "quantity", quantity)
	return nil
}

// Transfer moves quantity of the named item between two accounts atomically.
// Both inventories change in one transaction or neither does.
func (s *service) Transfer(ctx context.Context, fromID, toID, itemName string, quantity int) error {
	log := logger.FromContext(ctx)

	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if fromID == toID {
		return fmt.Errorf("%w: sender and recipient are the same", domain.ErrInvalidInput)
	}

	item, err := s.catalogSvc.GetItemByName(ctx, itemName)
	if err != nil {
		return err
	}
	if _, err := s.accountRepo.GetAccount(ctx, fromID); err != nil {
		return err
	}
	if _, err := s.accountRepo.GetAccount(ctx, toID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("%w: recipient", domain.ErrAccountNotFound)
		}
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Lock inventories in ID order so concurrent opposite-direction
	// transfers cannot deadlock.
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}

	inventories := make(map[string]*domain.Inventory, 2)
	for _, id := range []string{first, second} {
		inv, err := tx.GetInventoryForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get inventory: %w", err)
		}
		inventories[id] = inv
	}

	if err := utils.RemoveFromSlot(inventories[fromID], item.ID, quantity); err != nil {
		return fmt.Errorf("%w: %s", err, itemName)
	}
	utils.AddToSlot(inventories[toID], item.ID, quantity)

	for _, id := range []string{first, second} {
		if err := tx.UpdateInventory(ctx, id, *inventories[id]); err != nil {
			return fmt.Errorf("failed to update inventory: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Items transferred", "from", fromID, "to", toID, "item", itemName, "quantity", quantity)
	return nil
}
