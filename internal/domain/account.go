package domain

import "time"

// Account is the per-player ledger record. The ID is the opaque identifier
// issued by the external identity provider; the rest is owned by this service.
type Account struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Money           int64      `json:"money"`
	XP              int64      `json:"xp"`
	LastCollectedAt *time.Time `json:"last_collected_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// StartingMoney is granted to every freshly created account.
const StartingMoney = 100
