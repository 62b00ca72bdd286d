package handler

import (
	"net/http"

	"github.com/trovehq/trove/internal/account"
	"github.com/trovehq/trove/internal/logger"
)

// LoginRequest represents the request to log in or create an account
type LoginRequest struct {
	AccountID string `json:"account_id" validate:"required,max=128"`
}

// RenameRequest represents the request to rename an account
type RenameRequest struct {
	AccountID string `json:"account_id" validate:"required,max=128"`
	Name      string `json:"name" validate:"required,min=1,max=32,excludesall= "`
}

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountSvc account.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountSvc account.Service) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// Login handles the login endpoint
// @Summary Log in, creating the account on first sight
// @Description Returns the account for the given identity. A fresh account gets a generated name and the starting balance.
// @Tags account
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} account.LoginResult "Existing account"
// @Success 201 {object} account.LoginResult "Account created"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /account/login [post]
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
		return
	}

	result, err := h.accountSvc.Login(r.Context(), req.AccountID)
	if err != nil {
		respondServiceError(w, r, "Login", err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	respondJSON(w, status, result)
}

// Get handles the account lookup endpoint
// @Summary Get an account
// @Tags account
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} domain.Account
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /account [get]
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetQueryParam(r, w, "account_id")
	if !ok {
		return
	}

	acct, err := h.accountSvc.Get(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, r, "Get account", err)
		return
	}

	respondJSON(w, http.StatusOK, acct)
}

// Rename handles the rename endpoint
// @Summary Rename an account
// @Description Changes the account's display name. Names are unique across all accounts.
// @Tags account
// @Accept json
// @Produce json
// @Param request body RenameRequest true "Rename request"
// @Success 200 {object} domain.Account "Updated account"
// @Failure 400 {object} ErrorResponse "Invalid name or name unchanged"
// @Failure 409 {object} ErrorResponse "Name already taken"
// @Router /account/rename [post]
func (h *AccountHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Rename"); err != nil {
		return
	}

	logger.FromContext(r.Context()).Info("Rename request received", "account_id", req.AccountID)

	acct, err := h.accountSvc.Rename(r.Context(), req.AccountID, req.Name)
	if err != nil {
		respondServiceError(w, r, "Rename", err)
		return
	}

	respondJSON(w, http.StatusOK, acct)
}

// Delete handles the account deletion endpoint
// @Summary Delete an account
// @Description Removes the account and all dependent state (inventory, listings, friendships).
// @Tags account
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /account [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetQueryParam(r, w, "account_id")
	if !ok {
		return
	}

	if err := h.accountSvc.Delete(r.Context(), accountID); err != nil {
		respondServiceError(w, r, "Delete account", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAccountDeletedSuccess})
}
