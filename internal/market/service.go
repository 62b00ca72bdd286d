package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trovehq/trove/internal/catalog"
	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/logger"
	"github.com/trovehq/trove/internal/metrics"
	"github.com/trovehq/trove/internal/repository"
	"github.com/trovehq/trove/internal/utils"
)

// Close reasons reported on the listings_closed_total metric.
const (
	closeReasonCancelled = "cancelled"
	closeReasonExpired   = "expired"
)

// Config holds marketplace policy knobs
type Config struct {
	// ListingTTL is how long a new listing stays active. Zero disables expiry.
	ListingTTL time.Duration
	// UniqueListings enforces one active listing per (seller, item).
	UniqueListings bool
}

// BuyResult contains the result of a completed purchase
type BuyResult struct {
	Listing      domain.Listing `json:"listing"`
	Item         domain.Item    `json:"item"`
	TotalPrice   int64          `json:"total_price"`
	BuyerBalance int64          `json:"buyer_balance"`
}

// Service defines the interface for marketplace operations
type Service interface {
	Browse(ctx context.Context) ([]domain.ListingView, error)
	GetListing(ctx context.Context, listingID string) (*domain.Listing, error)
	ListingsBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error)
	List(ctx context.Context, sellerID, itemName string, quantity int, pricePerUnit int64) (*domain.Listing, error)
	Buy(ctx context.Context, buyerID, listingID string) (*BuyResult, error)
	Cancel(ctx context.Context, sellerID, listingID string) (*domain.Listing, error)
	ExpireDue(ctx context.Context) (int, error)
}

type service struct {
	repo       repository.Market
	catalogSvc catalog.Service
	cfg        Config
	now        func() time.Time
}

// NewService creates a new marketplace service
func NewService(repo repository.Market, catalogSvc catalog.Service, cfg Config) Service {
	return &service{
		repo:       repo,
		catalogSvc: catalogSvc,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Browse returns all active listings
func (s *service) Browse(ctx context.Context) ([]domain.ListingView, error) {
	return s.repo.GetActiveListings(ctx)
}

// GetListing returns a single listing in whatever lifecycle state it is in,
// so clients can show sold or expired outcomes after the fact.
func (s *service) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	return s.repo.GetListing(ctx, listingID)
}

// ListingsBySeller returns the seller's own active listings, the ones they
// may still cancel.
func (s *service) ListingsBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	return s.repo.GetActiveListingsBySeller(ctx, sellerID)
}

// List escrows quantity of the named item from the seller's inventory and
// creates an active listing for it. The debit and the insert commit together
// or not at all.
func (s *service) List(ctx context.Context, sellerID, itemName string, quantity int, pricePerUnit int64) (*domain.Listing, error) {
	log := logger.FromContext(ctx)
	log.Info("List called", "seller_id", sellerID, "item", itemName, "quantity", quantity, "price_per_unit", pricePerUnit)

	if quantity < 1 || quantity > domain.MaxTransactionQuantity {
		return nil, fmt.Errorf("%w: quantity must be 1-%d", domain.ErrInvalidInput, domain.MaxTransactionQuantity)
	}
	if pricePerUnit < 1 || pricePerUnit > domain.MaxListingPrice {
		return nil, fmt.Errorf("%w: price per unit must be 1-%d", domain.ErrInvalidInput, domain.MaxListingPrice)
	}

	item, err := s.catalogSvc.GetItemByName(ctx, itemName)
	if err != nil {
		return nil, err
	}

	if s.cfg.UniqueListings {
		exists, err := s.repo.HasActiveListing(ctx, sellerID, item.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateListing, itemName)
		}
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetAccountForUpdate(ctx, sellerID); err != nil {
		return nil, err
	}

	inventory, err := tx.GetInventoryForUpdate(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	if err := utils.RemoveFromSlot(inventory, item.ID, quantity); err != nil {
		return nil, fmt.Errorf("%w: %s", err, itemName)
	}
	if err := tx.UpdateInventory(ctx, sellerID, *inventory); err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	listing := &domain.Listing{
		SellerID:     sellerID,
		ItemID:       item.ID,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		Status:       domain.ListingActive,
	}
	if s.cfg.ListingTTL > 0 {
		expiresAt := s.now().Add(s.cfg.ListingTTL)
		listing.ExpiresAt = &expiresAt
	}

	// The partial unique index backs the pre-check above, so a race between
	// two List calls still yields ErrDuplicateListing rather than two rows.
	if err := tx.CreateListing(ctx, listing); err != nil {
		if errors.Is(err, domain.ErrDuplicateListing) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateListing, itemName)
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ListingsCreated.Inc()
	log.Info("Listing created", "listing_id", listing.ID, "seller_id", sellerID, "item", itemName)
	return listing, nil
}

// Buy atomically settles a listing: the buyer's money moves to the seller,
// the escrowed items move to the buyer, the listing goes to sold and an audit
// row is written. A listing found expired is closed instead and reported
// unavailable.
func (s *service) Buy(ctx context.Context, buyerID, listingID string) (*BuyResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Buy called", "buyer_id", buyerID, "listing_id", listingID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != domain.ListingActive {
		return nil, fmt.Errorf("%w: status %s", domain.ErrListingUnavailable, listing.Status)
	}

	now := s.now()
	if listing.Expired(now) {
		// Lazy expiry: close the listing on access instead of failing it open.
		if err := s.closeExpired(ctx, tx, listing); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		metrics.ListingsClosed.WithLabelValues(closeReasonExpired).Inc()
		return nil, fmt.Errorf("%w: listing expired", domain.ErrListingUnavailable)
	}

	if listing.SellerID == buyerID {
		return nil, domain.ErrSelfPurchase
	}

	item, err := s.catalogSvc.GetItemByID(ctx, listing.ItemID)
	if err != nil {
		return nil, err
	}

	// Lock both accounts in ID order so concurrent purchases between the
	// same pair cannot deadlock.
	accounts := make(map[string]*domain.Account, 2)
	for _, id := range orderedPair(buyerID, listing.SellerID) {
		account, err := tx.GetAccountForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		accounts[id] = account
	}

	buyer, seller := accounts[buyerID], accounts[listing.SellerID]
	total := listing.TotalPrice()
	if buyer.Money < total {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, total, buyer.Money)
	}

	if err := tx.UpdateAccountMoney(ctx, buyer.ID, buyer.Money-total); err != nil {
		return nil, err
	}
	if err := tx.UpdateAccountMoney(ctx, seller.ID, seller.Money+total); err != nil {
		return nil, err
	}

	inventory, err := tx.GetInventoryForUpdate(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	utils.AddToSlot(inventory, listing.ItemID, listing.Quantity)
	if err := tx.UpdateInventory(ctx, buyerID, *inventory); err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	if err := tx.SetListingStatus(ctx, listingID, domain.ListingSold); err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ListingID:  listing.ID,
		BuyerID:    buyerID,
		SellerID:   listing.SellerID,
		ItemID:     listing.ItemID,
		Quantity:   listing.Quantity,
		TotalPrice: total,
	}
	if err := tx.InsertSale(ctx, sale); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ListingsSold.Inc()
	metrics.MoneyTraded.Add(float64(total))
	log.Info("Listing sold", "listing_id", listingID, "buyer_id", buyerID, "seller_id", listing.SellerID, "total", total)

	listing.Status = domain.ListingSold
	return &BuyResult{
		Listing:      *listing,
		Item:         *item,
		TotalPrice:   total,
		BuyerBalance: buyer.Money - total,
	}, nil
}

// Cancel closes the caller's own active listing and returns the escrowed
// items to their inventory.
func (s *service) Cancel(ctx context.Context, sellerID, listingID string) (*domain.Listing, error) {
	log := logger.FromContext(ctx)
	log.Info("Cancel called", "seller_id", sellerID, "listing_id", listingID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, domain.ErrNotListingOwner
	}
	if listing.Status != domain.ListingActive {
		return nil, fmt.Errorf("%w: status %s", domain.ErrListingUnavailable, listing.Status)
	}

	if err := s.returnEscrow(ctx, tx, listing); err != nil {
		return nil, err
	}
	if err := tx.SetListingStatus(ctx, listingID, domain.ListingCancelled); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ListingsClosed.WithLabelValues(closeReasonCancelled).Inc()
	log.Info("Listing cancelled", "listing_id", listingID, "seller_id", sellerID)

	listing.Status = domain.ListingCancelled
	return listing, nil
}

// ExpireDue closes every active listing whose expiry has passed, returning
// escrowed items to their sellers. Idempotent: listings already closed, or
// claimed by a concurrent sweep, are skipped.
func (s *service) ExpireDue(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	listings, err := tx.GetExpiredListingsForUpdate(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if len(listings) == 0 {
		return 0, tx.Commit(ctx)
	}

	for i := range listings {
		if err := s.closeExpired(ctx, tx, &listings[i]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	for range listings {
		metrics.ListingsClosed.WithLabelValues(closeReasonExpired).Inc()
	}
	log.Info("Expired listings closed", "count", len(listings))
	return len(listings), nil
}

// closeExpired moves one listing to expired and returns its escrow.
func (s *service) closeExpired(ctx context.Context, tx repository.MarketTx, listing *domain.Listing) error {
	if err := s.returnEscrow(ctx, tx, listing); err != nil {
		return err
	}
	return tx.SetListingStatus(ctx, listing.ID, domain.ListingExpired)
}

// returnEscrow merges a closed listing's quantity back into the seller's
// inventory.
func (s *service) returnEscrow(ctx context.Context, tx repository.MarketTx, listing *domain.Listing) error {
	inventory, err := tx.GetInventoryForUpdate(ctx, listing.SellerID)
	if err != nil {
		return fmt.Errorf("failed to get inventory: %w", err)
	}
	utils.AddToSlot(inventory, listing.ItemID, listing.Quantity)
	if err := tx.UpdateInventory(ctx, listing.SellerID, *inventory); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}
	return nil
}

func orderedPair(a, b string) [2]string {
	if b < a {
		return [2]string{b, a}
	}
	return [2]string{a, b}
}
