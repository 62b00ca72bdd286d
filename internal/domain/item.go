package domain

// Item is a catalog entry. Catalog rows are immutable reference data seeded
// at setup time; player state only ever references them by ID.
type Item struct {
	ID           int    `json:"item_id"`
	InternalName string `json:"internal_name"`
	DisplayName  string `json:"display_name"`
	Rarity       Rarity `json:"rarity"`
	Description  string `json:"description,omitempty"`
}

// Rarity is the discrete tier an item belongs to. Collection draws a rarity
// from a weighted distribution and then picks uniformly within the tier.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists all tiers in ascending order of scarcity.
// Order matters: the weighted draw accumulates weights in this order.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// Valid reports whether r is one of the known tiers.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}
