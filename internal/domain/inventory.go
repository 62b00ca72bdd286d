package domain

// InventorySlot represents a single item stack in an account's inventory.
// There is at most one slot per item ID; acquisitions merge into it.
type InventorySlot struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`
}

// Inventory represents the structure stored in the JSONB column
type Inventory struct {
	Slots      []InventorySlot `json:"slots"`
	LastUpdate int64           `json:"last_update,omitempty"`
}

// Quantity returns the held quantity for itemID, zero when absent.
func (inv *Inventory) Quantity(itemID int) int {
	for _, slot := range inv.Slots {
		if slot.ItemID == itemID {
			return slot.Quantity
		}
	}
	return 0
}
