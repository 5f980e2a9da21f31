package store

import "strings"

const (
	WrittenBook  = "written_book"
	WritableBook = "writable_book"
	ShulkerBox   = "shulker_box"
	Chest        = "chest"
	TrappedChest = "trapped_chest"
	Barrel       = "barrel"
	Dispenser    = "dispenser"
	Dropper      = "dropper"
	Hopper       = "hopper"
)

// MaxInventorySize is the largest slot range the host creates, a double
// chest.
const MaxInventorySize = 54

// containerSizes maps block-like container items to their slot count.
var containerSizes = map[string]int{
	ShulkerBox:   27,
	Chest:        27,
	TrappedChest: 27,
	Barrel:       27,
	Dispenser:    9,
	Dropper:      9,
	Hopper:       5,
}

// IsContainerMaterial reports whether items of material store an inventory.
// Dyed shulker boxes ("red_shulker_box") count as shulker boxes.
func IsContainerMaterial(material string) bool {
	return ContainerSize(material) > 0
}

// ContainerSize returns the slot count for a container material, or 0.
func ContainerSize(material string) int {
	if strings.HasSuffix(material, "_"+ShulkerBox) {
		material = ShulkerBox
	}
	return containerSizes[material]
}

// IsBookMaterial reports whether items of material carry pages.
func IsBookMaterial(material string) bool {
	return material == WrittenBook || material == WritableBook
}
