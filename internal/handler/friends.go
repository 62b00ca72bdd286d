package handler

import (
	"net/http"

	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/friends"
)

// FriendRequestRequest represents the request to befriend another player
type FriendRequestRequest struct {
	AccountID     string `json:"account_id" validate:"required,max=128"`
	RecipientName string `json:"recipient_name" validate:"required,max=32"`
}

// FriendAnswerRequest represents accept/reject/cancel/remove calls
type FriendAnswerRequest struct {
	AccountID    string `json:"account_id" validate:"required,max=128"`
	FriendshipID string `json:"friendship_id" validate:"required,uuid"`
}

// FriendListResponse wraps an account's friendships
type FriendListResponse struct {
	Friends []domain.FriendEntry `json:"friends"`
}

// FriendsHandler handles friendship-related HTTP requests
type FriendsHandler struct {
	friendsSvc friends.Service
}

// NewFriendsHandler creates a new friends handler
func NewFriendsHandler(friendsSvc friends.Service) *FriendsHandler {
	return &FriendsHandler{friendsSvc: friendsSvc}
}

// Request handles the friend request endpoint
// @Summary Send a friend request
// @Description Creates a pending friendship towards the named player. Only one friendship can exist per pair.
// @Tags friends
// @Accept json
// @Produce json
// @Param request body FriendRequestRequest true "Friend request"
// @Success 201 {object} domain.Friendship "Pending friendship"
// @Failure 400 {object} ErrorResponse "Cannot befriend yourself"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 409 {object} ErrorResponse "Request already exists"
// @Router /friends/request [post]
func (h *FriendsHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req FriendRequestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Friend request"); err != nil {
		return
	}

	friendship, err := h.friendsSvc.Request(r.Context(), req.AccountID, req.RecipientName)
	if err != nil {
		respondServiceError(w, r, "Friend request", err)
		return
	}

	respondJSON(w, http.StatusCreated, friendship)
}

// Accept handles the accept endpoint
// @Summary Accept a pending friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body FriendAnswerRequest true "Accept request"
// @Success 200 {object} domain.Friendship "Accepted friendship"
// @Failure 403 {object} ErrorResponse "Only the recipient can accept"
// @Failure 404 {object} ErrorResponse "Friendship not found"
// @Router /friends/accept [post]
func (h *FriendsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req FriendAnswerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Accept friend"); err != nil {
		return
	}

	friendship, err := h.friendsSvc.Accept(r.Context(), req.AccountID, req.FriendshipID)
	if err != nil {
		respondServiceError(w, r, "Accept friend", err)
		return
	}

	respondJSON(w, http.StatusOK, friendship)
}

// Reject handles the reject endpoint
// @Summary Reject a pending friend request
// @Description Deletes the request; the requester may ask again later.
// @Tags friends
// @Accept json
// @Produce json
// @Param request body FriendAnswerRequest true "Reject request"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Only the recipient can reject"
// @Failure 404 {object} ErrorResponse "Friendship not found"
// @Router /friends/reject [post]
func (h *FriendsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req FriendAnswerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Reject friend"); err != nil {
		return
	}

	if err := h.friendsSvc.Reject(r.Context(), req.AccountID, req.FriendshipID); err != nil {
		respondServiceError(w, r, "Reject friend", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFriendRequestRejected})
}

// Cancel handles the request withdrawal endpoint
// @Summary Cancel an own pending friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body FriendAnswerRequest true "Cancel request"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Not the requester"
// @Failure 404 {object} ErrorResponse "Friendship not found"
// @Router /friends/cancel [post]
func (h *FriendsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req FriendAnswerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Cancel friend request"); err != nil {
		return
	}

	if err := h.friendsSvc.CancelRequest(r.Context(), req.AccountID, req.FriendshipID); err != nil {
		respondServiceError(w, r, "Cancel friend request", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFriendRequestCancelled})
}

// Remove handles the unfriend endpoint
// @Summary Remove an accepted friend
// @Description Either participant may remove an accepted friendship.
// @Tags friends
// @Accept json
// @Produce json
// @Param request body FriendAnswerRequest true "Remove request"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Not a participant"
// @Failure 404 {object} ErrorResponse "Friendship not found"
// @Router /friends/remove [post]
func (h *FriendsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req FriendAnswerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Remove friend"); err != nil {
		return
	}

	if err := h.friendsSvc.Remove(r.Context(), req.AccountID, req.FriendshipID); err != nil {
		respondServiceError(w, r, "Remove friend", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFriendRemovedSuccess})
}

// List handles the friend list endpoint
// @Summary List an account's friendships
// @Description Returns accepted friendships first, then pending requests in both directions.
// @Tags friends
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} FriendListResponse
// @Router /friends [get]
func (h *FriendsHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetQueryParam(r, w, "account_id")
	if !ok {
		return
	}

	entries, err := h.friendsSvc.List(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, r, "List friends", err)
		return
	}

	respondJSON(w, http.StatusOK, FriendListResponse{Friends: entries})
}
