package utils

import "github.com/trovehq/trove/internal/domain"

// FindSlot finds a slot with the given item ID in an inventory.
// Returns the index of the slot and the quantity found.
// Returns -1, 0 if not found.
func FindSlot(inventory *domain.Inventory, itemID int) (int, int) {
	for i, slot := range inventory.Slots {
		if slot.ItemID == itemID {
			return i, slot.Quantity
		}
	}
	return -1, 0
}

// AddToSlot merges delta into the slot for itemID, creating the slot when absent.
// delta must be positive; callers validate.
func AddToSlot(inventory *domain.Inventory, itemID, delta int) {
	if i, _ := FindSlot(inventory, itemID); i != -1 {
		inventory.Slots[i].Quantity += delta
		return
	}
	inventory.Slots = append(inventory.Slots, domain.InventorySlot{ItemID: itemID, Quantity: delta})
}

// RemoveFromSlot removes delta from the slot for itemID.
// Returns domain.ErrNotInInventory when no slot exists and
// domain.ErrInsufficientQuantity when the slot holds less than delta.
// A slot drained to zero is deleted, never persisted empty.
func RemoveFromSlot(inventory *domain.Inventory, itemID, delta int) error {
	i, quantity := FindSlot(inventory, itemID)
	if i == -1 {
		return domain.ErrNotInInventory
	}
	if quantity < delta {
		return domain.ErrInsufficientQuantity
	}
	if quantity == delta {
		inventory.Slots = append(inventory.Slots[:i], inventory.Slots[i+1:]...)
		return nil
	}
	inventory.Slots[i].Quantity -= delta
	return nil
}
