package domain

// MaxTransactionQuantity caps the quantity of any single inventory or
// marketplace mutation to guard against fat-finger and overflow input.
const MaxTransactionQuantity = 1000

// MaxListingPrice caps the per-unit price of a marketplace listing.
const MaxListingPrice = 1_000_000

// MaxAccountNameLength bounds player display names.
const MaxAccountNameLength = 32
