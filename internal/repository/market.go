package repository

import (
	"context"
	"time"

	"github.com/trovehq/trove/internal/domain"
)

// Market defines the interface for marketplace persistence
type Market interface {
	GetListing(ctx context.Context, listingID string) (*domain.Listing, error)
	GetActiveListings(ctx context.Context) ([]domain.ListingView, error)
	GetActiveListingsBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error)
	HasActiveListing(ctx context.Context, sellerID string, itemID int) (bool, error)

	BeginTx(ctx context.Context) (MarketTx, error)
}

// MarketTx defines the interface for marketplace transactions
type MarketTx interface {
	Tx
	GetListingForUpdate(ctx context.Context, listingID string) (*domain.Listing, error)
	CreateListing(ctx context.Context, listing *domain.Listing) error
	SetListingStatus(ctx context.Context, listingID string, status domain.ListingStatus) error
	GetExpiredListingsForUpdate(ctx context.Context, now time.Time) ([]domain.Listing, error)
	InsertSale(ctx context.Context, sale *domain.Sale) error
}
