package rarity

import (
	"fmt"

	"github.com/trovehq/trove/internal/domain"
)

// Weight pairs a rarity tier with its draw weight.
type Weight struct {
	Rarity domain.Rarity
	Weight int
}

// Table is an ordered weighted distribution over rarity tiers.
// Order is significant: draws accumulate weights in declared order, so the
// same table always maps a given roll to the same tier.
type Table struct {
	weights []Weight
	total   int
}

// DefaultWeights is the shipped distribution: common 50%, uncommon 30%,
// rare 15%, epic 4%, legendary 1%.
var DefaultWeights = []Weight{
	{domain.RarityCommon, 50},
	{domain.RarityUncommon, 30},
	{domain.RarityRare, 15},
	{domain.RarityEpic, 4},
	{domain.RarityLegendary, 1},
}

// NewTable validates the weights and builds a table.
func NewTable(weights []Weight) (*Table, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("rarity table must not be empty")
	}

	total := 0
	for _, w := range weights {
		if !w.Rarity.Valid() {
			return nil, fmt.Errorf("unknown rarity %q", w.Rarity)
		}
		if w.Weight <= 0 {
			return nil, fmt.Errorf("weight for %s must be positive, got %d", w.Rarity, w.Weight)
		}
		total += w.Weight
	}

	return &Table{weights: weights, total: total}, nil
}

// DefaultTable builds the table for DefaultWeights.
func DefaultTable() *Table {
	t, err := NewTable(DefaultWeights)
	if err != nil {
		panic(err) // static weights, cannot fail
	}
	return t
}

// Total returns the sum of all weights.
func (t *Table) Total() int {
	return t.total
}

// Draw maps a roll in [0, Total) to a rarity tier: weights accumulate in
// declared order and the first tier whose cumulative weight exceeds the roll
// wins. The strict comparison keeps each tier's probability mass exactly equal
// to its weight; changing it would shift mass across tier boundaries.
func (t *Table) Draw(roll int) (domain.Rarity, error) {
	if roll < 0 || roll >= t.total {
		return "", fmt.Errorf("roll %d outside [0, %d)", roll, t.total)
	}

	cumulative := 0
	for _, w := range t.weights {
		cumulative += w.Weight
		if roll < cumulative {
			return w.Rarity, nil
		}
	}

	// Unreachable: total is the sum of weights and roll < total.
	return t.weights[len(t.weights)-1].Rarity, nil
}
