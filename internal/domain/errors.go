package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound = "account not found"
	ErrMsgNameTaken       = "name is already taken"
	ErrMsgSameName        = "name is unchanged"

	// Item errors
	ErrMsgItemNotFound     = "item not found"
	ErrMsgNoItemsAvailable = "no items available"

	// Inventory errors
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgNotInInventory       = "item not in inventory"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Collection errors
	ErrMsgOnCooldown = "collection on cooldown"

	// Marketplace errors
	ErrMsgListingNotFound    = "listing not found"
	ErrMsgListingUnavailable = "listing is no longer available"
	ErrMsgDuplicateListing   = "item is already listed for sale"
	ErrMsgNotListingOwner    = "listing belongs to another account"
	ErrMsgSelfPurchase       = "cannot buy your own listing"

	// Friendship errors
	ErrMsgUserNotFound        = "user not found"
	ErrMsgInvalidTarget       = "cannot befriend yourself"
	ErrMsgDuplicateRequest    = "friend request already exists"
	ErrMsgFriendshipNotFound  = "friendship not found"
	ErrMsgNotParticipant      = "not a participant of this friendship"
	ErrMsgNotRequestRecipient = "only the recipient can answer a request"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)
	ErrNameTaken       = errors.New(ErrMsgNameTaken)
	ErrSameName        = errors.New(ErrMsgSameName)

	// Item errors
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrNoItemsAvailable = errors.New(ErrMsgNoItemsAvailable)

	// Inventory errors
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrNotInInventory       = errors.New(ErrMsgNotInInventory)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Collection errors
	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	// Marketplace errors
	ErrListingNotFound    = errors.New(ErrMsgListingNotFound)
	ErrListingUnavailable = errors.New(ErrMsgListingUnavailable)
	ErrDuplicateListing   = errors.New(ErrMsgDuplicateListing)
	ErrNotListingOwner    = errors.New(ErrMsgNotListingOwner)
	ErrSelfPurchase       = errors.New(ErrMsgSelfPurchase)

	// Friendship errors
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrInvalidTarget       = errors.New(ErrMsgInvalidTarget)
	ErrDuplicateRequest    = errors.New(ErrMsgDuplicateRequest)
	ErrFriendshipNotFound  = errors.New(ErrMsgFriendshipNotFound)
	ErrNotParticipant      = errors.New(ErrMsgNotParticipant)
	ErrNotRequestRecipient = errors.New(ErrMsgNotRequestRecipient)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
