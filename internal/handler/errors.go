package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Account operation error messages
	ErrMsgLoginFailed         = "Failed to log in"
	ErrMsgGetAccountFailed    = "Failed to get account"
	ErrMsgRenameFailed        = "Failed to rename account"
	ErrMsgDeleteAccountFailed = "Failed to delete account"

	// Collection operation error messages
	ErrMsgCollectFailed       = "Failed to collect"
	ErrMsgCollectStatusFailed = "Failed to get collect status"

	// Inventory operation error messages
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgAddItemFailed      = "Failed to add item"
	ErrMsgRemoveItemFailed   = "Failed to remove item"
	ErrMsgTransferItemFailed = "Failed to transfer item"

	// Marketplace operation error messages
	ErrMsgBrowseFailed        = "Failed to browse listings"
	ErrMsgListItemFailed      = "Failed to list item"
	ErrMsgBuyListingFailed    = "Failed to buy listing"
	ErrMsgCancelListingFailed = "Failed to cancel listing"

	// Friends operation error messages
	ErrMsgFriendRequestFailed = "Failed to send friend request"
	ErrMsgFriendAnswerFailed  = "Failed to answer friend request"
	ErrMsgFriendRemoveFailed  = "Failed to remove friend"
	ErrMsgFriendListFailed    = "Failed to list friends"
)

// Success messages for API responses
const (
	MsgItemAddedSuccess       = "Item added successfully"
	MsgItemRemovedSuccess     = "Item removed successfully"
	MsgItemTransferredSuccess = "Item transferred successfully"

	MsgAccountDeletedSuccess = "Account deleted"

	MsgFriendRequestRejected  = "Friend request rejected"
	MsgFriendRequestCancelled = "Friend request cancelled"
	MsgFriendRemovedSuccess   = "Friend removed"
)
