package model

// InventoryEntry links a character to a catalog item and freezes the
// item's name, stats and price at acquisition time. Later item edits
// never touch these rows.
type InventoryEntry struct {
	Id          uint64 `json:"inventoryId"`
	CharacterId uint64 `json:"characterId" gorm:"uniqueIndex:idx_entry_character_name"`
	ItemId      uint64 `json:"itemId"`
	Name        string `json:"name" gorm:"uniqueIndex:idx_entry_character_name"`
	Health      int    `json:"health"`
	Power       int    `json:"power"`
	Price       int64  `json:"price"`
}

func (InventoryEntry) TableName() string {
	return "inventory_entry"
}
