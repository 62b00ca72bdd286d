package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/logger"
	"github.com/trovehq/trove/internal/market"
)

// ListItemRequest represents the request to list an item for sale
type ListItemRequest struct {
	AccountID    string `json:"account_id" validate:"required,max=128"`
	ItemName     string `json:"item_name" validate:"required,max=100,itemname"`
	Quantity     int    `json:"quantity" validate:"required,min=1,max=1000"`
	PricePerUnit int64  `json:"price_per_unit" validate:"required,min=1,max=1000000"`
}

// BuyListingRequest represents the request to buy a listing
type BuyListingRequest struct {
	AccountID string `json:"account_id" validate:"required,max=128"`
	ListingID string `json:"listing_id" validate:"required,uuid"`
}

// CancelListingRequest represents the request to cancel a listing
type CancelListingRequest struct {
	AccountID string `json:"account_id" validate:"required,max=128"`
	ListingID string `json:"listing_id" validate:"required,uuid"`
}

// BrowseResponse wraps the active listings
type BrowseResponse struct {
	Listings []domain.ListingView `json:"listings"`
}

// MyListingsResponse wraps an account's own active listings
type MyListingsResponse struct {
	Listings []domain.Listing `json:"listings"`
}

// MarketHandler handles marketplace-related HTTP requests
type MarketHandler struct {
	marketSvc market.Service
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(marketSvc market.Service) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc}
}

// Browse handles the listings browse endpoint
// @Summary Browse active listings
// @Tags market
// @Produce json
// @Success 200 {object} BrowseResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /market/listings [get]
func (h *MarketHandler) Browse(w http.ResponseWriter, r *http.Request) {
	listings, err := h.marketSvc.Browse(r.Context())
	if err != nil {
		respondServiceError(w, r, "Browse", err)
		return
	}

	respondJSON(w, http.StatusOK, BrowseResponse{Listings: listings})
}

// GetListing handles the single-listing lookup endpoint
// @Summary Get one listing
// @Description Returns the listing in its current lifecycle state, including sold or expired.
// @Tags market
// @Produce json
// @Param listingID path string true "Listing ID"
// @Success 200 {object} domain.Listing
// @Failure 404 {object} ErrorResponse "Listing not found"
// @Router /market/listing/{listingID} [get]
func (h *MarketHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")

	listing, err := h.marketSvc.GetListing(r.Context(), listingID)
	if err != nil {
		respondServiceError(w, r, "Get listing", err)
		return
	}

	respondJSON(w, http.StatusOK, listing)
}

// MyListings handles the own-listings endpoint
// @Summary Get the caller's active listings
// @Tags market
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} MyListingsResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /market/listings/mine [get]
func (h *MarketHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetQueryParam(r, w, "account_id")
	if !ok {
		return
	}

	listings, err := h.marketSvc.ListingsBySeller(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, r, "My listings", err)
		return
	}

	respondJSON(w, http.StatusOK, MyListingsResponse{Listings: listings})
}

// List handles the listing creation endpoint
// @Summary List an item for sale
// @Description Escrows the quantity from the seller's inventory and creates an active listing.
// @Tags market
// @Accept json
// @Produce json
// @Param request body ListItemRequest true "List request"
// @Success 201 {object} domain.Listing "Created listing"
// @Failure 400 {object} ErrorResponse "Invalid request or not enough held"
// @Failure 409 {object} ErrorResponse "Item already listed"
// @Router /market/list [post]
func (h *MarketHandler) List(w http.ResponseWriter, r *http.Request) {
	var req ListItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "List item"); err != nil {
		return
	}

	listing, err := h.marketSvc.List(r.Context(), req.AccountID, req.ItemName, req.Quantity, req.PricePerUnit)
	if err != nil {
		respondServiceError(w, r, "List item", err)
		return
	}

	respondJSON(w, http.StatusCreated, listing)
}

// Buy handles the purchase endpoint
// @Summary Buy a listing
// @Description Settles the listing atomically: money to the seller, items to the buyer, audit row written.
// @Tags market
// @Accept json
// @Produce json
// @Param request body BuyListingRequest true "Buy request"
// @Success 200 {object} market.BuyResult "Completed purchase"
// @Failure 400 {object} ErrorResponse "Not enough money or own listing"
// @Failure 404 {object} ErrorResponse "Listing not found"
// @Failure 409 {object} ErrorResponse "Listing no longer available"
// @Router /market/buy [post]
func (h *MarketHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req BuyListingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy listing"); err != nil {
		return
	}

	result, err := h.marketSvc.Buy(r.Context(), req.AccountID, req.ListingID)
	if err != nil {
		respondServiceError(w, r, "Buy listing", err)
		return
	}

	logger.FromContext(r.Context()).Info("Purchase successful",
		"listing_id", req.ListingID,
		"buyer_id", req.AccountID,
		"total", result.TotalPrice)

	respondJSON(w, http.StatusOK, result)
}

// Cancel handles the listing cancellation endpoint
// @Summary Cancel an own listing
// @Description Closes the listing and returns the escrowed items to the seller.
// @Tags market
// @Accept json
// @Produce json
// @Param request body CancelListingRequest true "Cancel request"
// @Success 200 {object} domain.Listing "Cancelled listing"
// @Failure 403 {object} ErrorResponse "Listing belongs to another account"
// @Failure 404 {object} ErrorResponse "Listing not found"
// @Failure 409 {object} ErrorResponse "Listing no longer active"
// @Router /market/cancel [post]
func (h *MarketHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelListingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Cancel listing"); err != nil {
		return
	}

	listing, err := h.marketSvc.Cancel(r.Context(), req.AccountID, req.ListingID)
	if err != nil {
		respondServiceError(w, r, "Cancel listing", err)
		return
	}

	respondJSON(w, http.StatusOK, listing)
}
