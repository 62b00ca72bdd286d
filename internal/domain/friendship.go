package domain

import "time"

// FriendshipStatus is the state of a friendship row.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship relates two accounts. At most one row exists per unordered pair
// regardless of direction; rejection and removal delete the row outright.
type Friendship struct {
	ID          string           `json:"friendship_id"`
	RequesterID string           `json:"requester_id"`
	RecipientID string           `json:"recipient_id"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Involves reports whether accountID is a participant of the friendship.
func (f *Friendship) Involves(accountID string) bool {
	return f.RequesterID == accountID || f.RecipientID == accountID
}

// OtherParty returns the participant that is not accountID.
func (f *Friendship) OtherParty(accountID string) string {
	if f.RequesterID == accountID {
		return f.RecipientID
	}
	return f.RequesterID
}

// FriendEntry is a friendship joined with the other party's display name,
// as returned to the presentation layer.
type FriendEntry struct {
	FriendshipID string           `json:"friendship_id"`
	AccountID    string           `json:"account_id"`
	Name         string           `json:"name"`
	Status       FriendshipStatus `json:"status"`
	Outgoing     bool             `json:"outgoing"`
}
