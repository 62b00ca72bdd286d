package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/trovehq/trove/internal/catalog"
	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/logger"
	"github.com/trovehq/trove/internal/metrics"
	"github.com/trovehq/trove/internal/rarity"
	"github.com/trovehq/trove/internal/repository"
	"github.com/trovehq/trove/internal/utils"
)

// xpByRarity is the experience granted per collect, scaled by tier.
var xpByRarity = map[domain.Rarity]int64{
	domain.RarityCommon:    1,
	domain.RarityUncommon:  2,
	domain.RarityRare:      5,
	domain.RarityEpic:      10,
	domain.RarityLegendary: 25,
}

// Result contains the outcome of a successful collect
type Result struct {
	Item          domain.Item   `json:"item"`
	Rarity        domain.Rarity `json:"rarity"`
	XPGained      int64         `json:"xp_gained"`
	CollectedAt   time.Time     `json:"collected_at"`
	NextCollectAt time.Time     `json:"next_collect_at"`
}

// Status describes whether an account can collect right now
type Status struct {
	Ready            bool       `json:"ready"`
	RemainingSeconds int64      `json:"remaining_seconds"`
	NextCollectAt    *time.Time `json:"next_collect_at,omitempty"`
	LastCollectedAt  *time.Time `json:"last_collected_at,omitempty"`
}

// Service defines the interface for collection operations
type Service interface {
	Collect(ctx context.Context, accountID string) (*Result, error)
	Status(ctx context.Context, accountID string) (*Status, error)
}

type service struct {
	repo       repository.Collection
	catalogSvc catalog.Service
	table      *rarity.Table
	cooldown   time.Duration
	now        func() time.Time
	rnd        func(n int) int // For rarity and item rolls
}

// NewService creates a new collection service
func NewService(repo repository.Collection, catalogSvc catalog.Service, table *rarity.Table, cooldown time.Duration) Service {
	return &service{
		repo:       repo,
		catalogSvc: catalogSvc,
		table:      table,
		cooldown:   cooldown,
		now:        time.Now,
		rnd:        func(n int) int { return utils.RandomInt(0, n-1) },
	}
}

// Collect grants the account one random item and advances the cooldown gate.
// The account row lock serializes concurrent attempts: exactly one of them
// sees an elapsed cooldown, the rest fail with CooldownActiveError.
func (s *service) Collect(ctx context.Context, accountID string) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Info("Collect called", "account_id", accountID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	account, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if account.LastCollectedAt != nil {
		nextAt := account.LastCollectedAt.Add(s.cooldown)
		if now.Before(nextAt) {
			metrics.CollectsRejected.Inc()
			return nil, &CooldownActiveError{Remaining: nextAt.Sub(now), NextAt: nextAt}
		}
	}

	drawn, err := s.table.Draw(s.rnd(s.table.Total()))
	if err != nil {
		return nil, fmt.Errorf("failed to draw rarity: %w", err)
	}

	items, err := s.catalogSvc.GetItemsByRarity(ctx, drawn)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: rarity %s", domain.ErrNoItemsAvailable, drawn)
	}
	item := items[s.rnd(len(items))]

	inventory, err := tx.GetInventoryForUpdate(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	utils.AddToSlot(inventory, item.ID, 1)
	if err := tx.UpdateInventory(ctx, accountID, *inventory); err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	xp := xpByRarity[drawn]
	if err := tx.AwardXP(ctx, accountID, xp); err != nil {
		return nil, fmt.Errorf("failed to award xp: %w", err)
	}
	if err := tx.SetLastCollectedAt(ctx, accountID, now); err != nil {
		return nil, fmt.Errorf("failed to set last collected at: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ItemsCollected.WithLabelValues(string(drawn)).Inc()
	log.Info("Item collected", "account_id", accountID, "item", item.InternalName, "rarity", drawn, "xp", xp)

	return &Result{
		Item:          item,
		Rarity:        drawn,
		XPGained:      xp,
		CollectedAt:   now,
		NextCollectAt: now.Add(s.cooldown),
	}, nil
}

// Status reports whether the account can collect and when it next can.
// Read-only; never mutates the gate.
func (s *service) Status(ctx context.Context, accountID string) (*Status, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	status := &Status{Ready: true, LastCollectedAt: account.LastCollectedAt}
	if account.LastCollectedAt == nil {
		return status, nil
	}

	nextAt := account.LastCollectedAt.Add(s.cooldown)
	status.NextCollectAt = &nextAt

	if remaining := nextAt.Sub(s.now()); remaining > 0 {
		status.Ready = false
		status.RemainingSeconds = int64(remaining.Seconds())
	}
	return status, nil
}
