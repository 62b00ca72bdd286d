package handler

import (
	"net/http"

	"github.com/trovehq/trove/internal/collection"
	"github.com/trovehq/trove/internal/logger"
)

// CollectRequest represents the request to collect an item
type CollectRequest struct {
	AccountID string `json:"account_id" validate:"required,max=128"`
}

// CollectionHandler handles collection-related HTTP requests
type CollectionHandler struct {
	collectionSvc collection.Service
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionSvc collection.Service) *CollectionHandler {
	return &CollectionHandler{collectionSvc: collectionSvc}
}

// Collect handles the collect endpoint
// @Summary Collect a random item
// @Description Draws a rarity from the weighted table, grants one random item of that tier and starts the cooldown.
// @Tags collection
// @Accept json
// @Produce json
// @Param request body CollectRequest true "Collect request"
// @Success 200 {object} collection.Result "Collected item"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 429 {object} ErrorResponse "Collection on cooldown"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /collect [post]
func (h *CollectionHandler) Collect(w http.ResponseWriter, r *http.Request) {
	var req CollectRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Collect"); err != nil {
		return
	}

	result, err := h.collectionSvc.Collect(r.Context(), req.AccountID)
	if err != nil {
		respondServiceError(w, r, "Collect", err)
		return
	}

	logger.FromContext(r.Context()).Info("Collect successful",
		"account_id", req.AccountID,
		"item", result.Item.InternalName,
		"rarity", result.Rarity)

	respondJSON(w, http.StatusOK, result)
}

// Status handles the collect status endpoint
// @Summary Get collect readiness
// @Description Reports whether the account can collect now and when it next can. Never mutates the cooldown.
// @Tags collection
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} collection.Status
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /collect/status [get]
func (h *CollectionHandler) Status(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetQueryParam(r, w, "account_id")
	if !ok {
		return
	}

	status, err := h.collectionSvc.Status(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, r, "Collect status", err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}
