package domain

import "time"

// ListingStatus is the lifecycle state of a marketplace listing.
// Active is the only non-terminal state.
type ListingStatus string

const (
	ListingActive    ListingStatus = "active"
	ListingSold      ListingStatus = "sold"
	ListingCancelled ListingStatus = "cancelled"
	ListingExpired   ListingStatus = "expired"
)

// Listing is a standing offer by one account to sell a quantity of one item
// at a fixed per-unit price. The listed quantity is held in escrow: it is
// debited from the seller's inventory when the listing is created and
// reconciled back into some account's inventory on every terminal transition
// (buyer's on sale, seller's on cancel or expiry).
type Listing struct {
	ID           string        `json:"listing_id"`
	SellerID     string        `json:"seller_id"`
	ItemID       int           `json:"item_id"`
	Quantity     int           `json:"quantity"`
	PricePerUnit int64         `json:"price_per_unit"`
	Status       ListingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	ExpiresAt    *time.Time    `json:"expires_at,omitempty"`
}

// TotalPrice is the amount a buyer pays for the whole listing.
func (l *Listing) TotalPrice() int64 {
	return l.PricePerUnit * int64(l.Quantity)
}

// Expired reports whether the listing's expiry has passed at the given time.
// Listings without an expiry never expire.
func (l *Listing) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

// ListingView is a listing joined with catalog and seller display data,
// as returned to the presentation layer.
type ListingView struct {
	Listing
	ItemName    string `json:"item_name"`
	ItemDisplay string `json:"item_display_name"`
	ItemRarity  Rarity `json:"item_rarity"`
	SellerName  string `json:"seller_name"`
}

// Sale is the audit record written for every completed Buy.
type Sale struct {
	ID         string    `json:"sale_id"`
	ListingID  string    `json:"listing_id"`
	BuyerID    string    `json:"buyer_id"`
	SellerID   string    `json:"seller_id"`
	ItemID     int       `json:"item_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice int64     `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}
