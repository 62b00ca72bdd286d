package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/repository"
)

// MarketRepository implements the marketplace repository for PostgreSQL
type MarketRepository struct {
	db *pgxpool.Pool
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(db *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{db: db}
}

// GetListing retrieves a listing by ID
func (r *MarketRepository) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	query := "SELECT " + listingColumns + " FROM listings WHERE listing_id = $1"
	return scanListing(r.db.QueryRow(ctx, query, listingID))
}

// GetActiveListings retrieves all active listings joined with catalog and
// seller display data, newest first.
func (r *MarketRepository) GetActiveListings(ctx context.Context) ([]domain.ListingView, error) {
	query := `
		SELECT l.listing_id, l.seller_id, l.item_id, l.quantity, l.price_per_unit,
		       l.status, l.created_at, l.expires_at,
		       i.internal_name, i.display_name, i.rarity, a.name
		FROM listings l
		JOIN items i ON i.item_id = l.item_id
		JOIN accounts a ON a.account_id = l.seller_id
		WHERE l.status = 'active'
		ORDER BY l.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active listings: %w", err)
	}
	defer rows.Close()

	views := []domain.ListingView{}
	for rows.Next() {
		var v domain.ListingView
		err := rows.Scan(
			&v.ID,
			&v.SellerID,
			&v.ItemID,
			&v.Quantity,
			&v.PricePerUnit,
			&v.Status,
			&v.CreatedAt,
			&v.ExpiresAt,
			&v.ItemName,
			&v.ItemDisplay,
			&v.ItemRarity,
			&v.SellerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing view: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listing views: %w", err)
	}
	return views, nil
}

// GetActiveListingsBySeller retrieves a seller's active listings
func (r *MarketRepository) GetActiveListingsBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	query := "SELECT " + listingColumns + " FROM listings WHERE seller_id = $1 AND status = 'active' ORDER BY created_at DESC"
	rows, err := r.db.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get listings by seller: %w", err)
	}
	return scanListings(rows)
}

// HasActiveListing reports whether the seller already has an active listing
// for the item.
func (r *MarketRepository) HasActiveListing(ctx context.Context, sellerID string, itemID int) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM listings WHERE seller_id = $1 AND item_id = $2 AND status = 'active')"
	var exists bool
	if err := r.db.QueryRow(ctx, query, sellerID, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active listing: %w", err)
	}
	return exists, nil
}

// BeginTx starts a transaction and returns a MarketTx
func (r *MarketRepository) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin market transaction: %w", err)
	}
	return &marketTx{baseTx{tx: tx}}, nil
}

// marketTx implements repository.MarketTx
type marketTx struct {
	baseTx
}

// GetListingForUpdate retrieves a listing with a FOR UPDATE lock
func (t *marketTx) GetListingForUpdate(ctx context.Context, listingID string) (*domain.Listing, error) {
	query := "SELECT " + listingColumns + " FROM listings WHERE listing_id = $1 FOR UPDATE"
	return scanListing(t.tx.QueryRow(ctx, query, listingID))
}

// CreateListing inserts a new listing and fills in the generated ID and
// creation time. Returns domain.ErrDuplicateListing when the seller already
// has an active listing for the item.
func (t *marketTx) CreateListing(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (seller_id, item_id, quantity, price_per_unit, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING listing_id, created_at
	`
	err := t.tx.QueryRow(ctx, query,
		listing.SellerID, listing.ItemID, listing.Quantity, listing.PricePerUnit,
		string(listing.Status), listing.ExpiresAt).
		Scan(&listing.ID, &listing.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "idx_listings_active_seller_item") {
			return domain.ErrDuplicateListing
		}
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

// SetListingStatus moves a listing to the given lifecycle state
func (t *marketTx) SetListingStatus(ctx context.Context, listingID string, status domain.ListingStatus) error {
	tag, err := t.tx.Exec(ctx,
		"UPDATE listings SET status = $1 WHERE listing_id = $2",
		string(status), listingID)
	if err != nil {
		return fmt.Errorf("failed to set listing status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// GetExpiredListingsForUpdate locks and returns active listings whose expiry
// has passed. SKIP LOCKED keeps concurrent sweeps and buys from blocking on
// each other; a row claimed elsewhere is simply not ours to expire.
func (t *marketTx) GetExpiredListingsForUpdate(ctx context.Context, now time.Time) ([]domain.Listing, error) {
	query := "SELECT " + listingColumns + ` FROM listings
		WHERE status = 'active' AND expires_at IS NOT NULL AND expires_at <= $1
		ORDER BY expires_at
		FOR UPDATE SKIP LOCKED`
	rows, err := t.tx.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get expired listings: %w", err)
	}
	return scanListings(rows)
}

// InsertSale writes a sale audit row
func (t *marketTx) InsertSale(ctx context.Context, sale *domain.Sale) error {
	query := `
		INSERT INTO sales (listing_id, buyer_id, seller_id, item_id, quantity, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING sale_id, created_at
	`
	err := t.tx.QueryRow(ctx, query,
		sale.ListingID, sale.BuyerID, sale.SellerID, sale.ItemID, sale.Quantity, sale.TotalPrice).
		Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}
