package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trovehq/trove/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound, ErrMsgAccountNotFoundError},
		{"name taken", domain.ErrNameTaken, http.StatusConflict, ErrMsgNameTakenError},
		{"same name", domain.ErrSameName, http.StatusBadRequest, ErrMsgSameNameError},
		{"item not found", domain.ErrItemNotFound, http.StatusBadRequest, ErrMsgItemNotFoundError},
		{"no items available", domain.ErrNoItemsAvailable, http.StatusInternalServerError, ErrMsgNoItemsAvailableError},
		{"insufficient quantity", domain.ErrInsufficientQuantity, http.StatusBadRequest, ErrMsgInsufficientItemsErr},
		{"not in inventory", domain.ErrNotInInventory, http.StatusBadRequest, ErrMsgNotInInventoryError},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest, ErrMsgNotEnoughMoneyError},
		{"on cooldown", domain.ErrOnCooldown, http.StatusTooManyRequests, ErrMsgOnCooldownError},
		{"listing not found", domain.ErrListingNotFound, http.StatusNotFound, ErrMsgListingNotFoundError},
		{"listing unavailable", domain.ErrListingUnavailable, http.StatusConflict, ErrMsgListingUnavailableError},
		{"duplicate listing", domain.ErrDuplicateListing, http.StatusConflict, ErrMsgDuplicateListingError},
		{"not listing owner", domain.ErrNotListingOwner, http.StatusForbidden, ErrMsgNotListingOwnerError},
		{"self purchase", domain.ErrSelfPurchase, http.StatusBadRequest, ErrMsgSelfPurchaseError},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, ErrMsgFriendUserNotFoundErr},
		{"self friend", domain.ErrInvalidTarget, http.StatusBadRequest, ErrMsgSelfFriendError},
		{"duplicate request", domain.ErrDuplicateRequest, http.StatusConflict, ErrMsgDuplicateRequestError},
		{"friendship not found", domain.ErrFriendshipNotFound, http.StatusNotFound, ErrMsgFriendshipNotFoundError},
		{"not participant", domain.ErrNotParticipant, http.StatusForbidden, ErrMsgNotParticipantError},
		{"not recipient", domain.ErrNotRequestRecipient, http.StatusForbidden, ErrMsgNotRequestRecipientError},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidRequestError},
		{"database error", domain.ErrDatabaseError, http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestMapServiceErrorToUserMessage_WrappedError(t *testing.T) {
	err := fmt.Errorf("failed to buy: %w", domain.ErrInsufficientFunds)

	status, msg := mapServiceErrorToUserMessage(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ErrMsgNotEnoughMoneyError, msg)
}

func TestMapServiceErrorToUserMessage_ShortUnknownErrorPassesThrough(t *testing.T) {
	status, msg := mapServiceErrorToUserMessage(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "boom", msg)
}

func TestMapServiceErrorToUserMessage_LongErrorGetsGenericMessage(t *testing.T) {
	status, msg := mapServiceErrorToUserMessage(errors.New(strings.Repeat("x", 300)))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, ErrMsgGenericServerError, msg)
}

func TestMapServiceErrorToUserMessage_NilError(t *testing.T) {
	status, msg := mapServiceErrorToUserMessage(nil)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, ErrMsgUnknownError, msg)
}

func TestRespondJSON_WritesPayloadAndContentType(t *testing.T) {
	rec := httptest.NewRecorder()

	respondJSON(rec, http.StatusCreated, SuccessResponse{Message: "done"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"done"}`, rec.Body.String())
}

func TestRespondError_WrapsMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	respondError(rec, http.StatusBadRequest, "bad input")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad input"}`, rec.Body.String())
}
