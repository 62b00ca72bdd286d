package handler

import (
	"net/http"

	"github.com/trovehq/trove/internal/inventory"
	"github.com/trovehq/trove/internal/logger"
)

// AddItemRequest represents the request to grant items to an account
type AddItemRequest struct {
	AccountID string `json:"account_id" validate:"required,max=128"`
	ItemName  string `json:"item_name" validate:"required,max=100,itemname"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=1000"`
}

// RemoveItemRequest represents the request to remove items from an account
type RemoveItemRequest struct {
	AccountID string `json:"account_id" validate:"required,max=128"`
	ItemName  string `json:"item_name" validate:"required,max=100,itemname"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=1000"`
}

// TransferItemRequest represents the request to move items between accounts
type TransferItemRequest struct {
	FromAccountID string `json:"from_account_id" validate:"required,max=128"`
	ToAccountID   string `json:"to_account_id" validate:"required,max=128"`
	ItemName      string `json:"item_name" validate:"required,max=100,itemname"`
	Quantity      int    `json:"quantity" validate:"required,min=1,max=1000"`
}

// InventoryResponse wraps an account's inventory entries
type InventoryResponse struct {
	AccountID string            `json:"account_id"`
	Items     []inventory.Entry `json:"items"`
}

// InventoryHandler handles inventory-related HTTP requests
type InventoryHandler struct {
	inventorySvc inventory.Service
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventorySvc inventory.Service) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc}
}

// Get handles the inventory lookup endpoint
// @Summary Get an account's inventory
// @Tags inventory
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} InventoryResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /inventory [get]
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetQueryParam(r, w, "account_id")
	if !ok {
		return
	}

	entries, err := h.inventorySvc.GetInventory(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, r, "Get inventory", err)
		return
	}

	respondJSON(w, http.StatusOK, InventoryResponse{AccountID: accountID, Items: entries})
}

// Add handles the item grant endpoint
// @Summary Add items to an account's inventory
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Add request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid request or unknown item"
// @Router /inventory/add [post]
func (h *InventoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add item"); err != nil {
		return
	}

	if err := h.inventorySvc.AddQuantity(r.Context(), req.AccountID, req.ItemName, req.Quantity); err != nil {
		respondServiceError(w, r, "Add item", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemAddedSuccess})
}

// Remove handles the item removal endpoint
// @Summary Remove items from an account's inventory
// @Description Fails whole when the account holds fewer than the requested quantity.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body RemoveItemRequest true "Remove request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Item missing or not enough held"
// @Router /inventory/remove [post]
func (h *InventoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req RemoveItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Remove item"); err != nil {
		return
	}

	if err := h.inventorySvc.RemoveQuantity(r.Context(), req.AccountID, req.ItemName, req.Quantity); err != nil {
		respondServiceError(w, r, "Remove item", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemRemovedSuccess})
}

// Transfer handles the item transfer endpoint
// @Summary Transfer items between two accounts
// @Description Moves items atomically: both inventories change or neither does.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body TransferItemRequest true "Transfer request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid request or not enough held"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /inventory/transfer [post]
func (h *InventoryHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Transfer item"); err != nil {
		return
	}

	log := logger.FromContext(r.Context())
	log.Info("Transfer request received", "from", req.FromAccountID, "to", req.ToAccountID, "item", req.ItemName)

	if err := h.inventorySvc.Transfer(r.Context(), req.FromAccountID, req.ToAccountID, req.ItemName, req.Quantity); err != nil {
		respondServiceError(w, r, "Transfer item", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemTransferredSuccess})
}
