package inventory

import (
	"errors"

	"github.com/forgeworks/itemforge-backend/internal/pkg/model"
	"github.com/forgeworks/itemforge-backend/internal/pkg/reject"
	"github.com/forgeworks/itemforge-backend/internal/pkg/store"
	"gorm.io/gorm"
)

const (
	itemNameRequired   string = "error.item.name-required"
	itemNotFound       string = "error.item.not-found"
	itemEmptyUpdate    string = "error.item.empty-update"
	noCharacter        string = "error.inventory.no-character"
	duplicateItem      string = "error.inventory.duplicate-item"
	ownerCharacterGone string = "error.inventory.character-not-found"
)

type inventoryService struct {
	db *gorm.DB
}

// addItem creates a catalog item and its inventory entry as one atomic
// unit. The entry snapshots the item's name, stats and price; the
// caller's oldest character is the implicit acquirer.
func (s *inventoryService) addItem(ownerId uint64, body AddItemRequest) (*model.InventoryEntry, *reject.ProblemWithTrace) {
	var character model.Character
	result := s.db.Where("user_id = ?", ownerId).Order("id").First(&character)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.MissingResourceProblem("Create a character first", noCharacter),
		}
	}
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	var existing model.InventoryEntry
	result = s.db.Where("character_id = ? AND name = ?", character.Id, body.Name).First(&existing)
	if result.Error == nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.ConflictProblem("Item already in inventory", duplicateItem),
		}
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	var entry model.InventoryEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item := model.Item{
			Name:        body.Name,
			Health:      body.Health,
			Power:       body.Power,
			Price:       body.Price,
			Description: body.Description,
		}
		if result := tx.Create(&item); result.Error != nil {
			return result.Error
		}

		entry = model.InventoryEntry{
			CharacterId: character.Id,
			ItemId:      item.Id,
			Name:        item.Name,
			Health:      item.Health,
			Power:       item.Power,
			Price:       item.Price,
		}
		if result := tx.Create(&entry); result.Error != nil {
			return result.Error
		}

		return nil
	})

	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.ConflictProblem("Item already in inventory", duplicateItem),
				Cause:   err,
			}
		}
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(err), Cause: err}
	}

	return &entry, nil
}

// updateItem applies only the fields present in the request. Price is
// immutable and previously snapshotted inventory entries are never
// touched.
func (s *inventoryService) updateItem(itemId uint64, body UpdateItemRequest) (*model.Item, *reject.ProblemWithTrace) {
	if body.Name == nil && body.Health == nil && body.Power == nil && body.Description == nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.ValidationProblem("Provide at least one field to update", itemEmptyUpdate),
		}
	}

	var item model.Item
	result := s.db.First(&item, itemId)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.MissingResourceProblem("Item not found", itemNotFound),
		}
	}
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Health != nil {
		item.Health = *body.Health
	}
	if body.Power != nil {
		item.Power = *body.Power
	}
	if body.Description != nil {
		item.Description = *body.Description
	}

	if result := s.db.Save(&item); result.Error != nil {
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	return &item, nil
}

type InventoryItemStats struct {
	Health int `json:"health"`
	Power  int `json:"power"`
}

type InventoryItem struct {
	Id    uint64             `json:"id"`
	Name  string             `json:"name"`
	Stats InventoryItemStats `json:"stats"`
	Price int64              `json:"price"`
}

type InventoryListEntry struct {
	InventoryId uint64        `json:"inventoryId"`
	Item        InventoryItem `json:"item"`
}

type inventoryRow struct {
	InventoryId uint64
	ItemId      uint64
	ItemName    string
	ItemHealth  int
	ItemPower   int
	ItemPrice   int64
}

// listForCharacter returns the character's entries with the live catalog
// item joined in. An existing character with no items is an empty 200,
// not an error; only an unresolvable character id is a 404.
func (s *inventoryService) listForCharacter(characterId uint64) ([]InventoryListEntry, *reject.ProblemWithTrace) {
	var character model.Character
	result := s.db.First(&character, characterId)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.MissingResourceProblem("Character not found", ownerCharacterGone),
		}
	}
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	var rows []inventoryRow
	result = s.db.
		Table("inventory_entry").
		Joins("INNER JOIN item ON inventory_entry.item_id = item.id").
		Where("inventory_entry.character_id = ?", characterId).
		Select(`
			inventory_entry.id AS inventory_id,
			item.id AS item_id,
			item.name AS item_name,
			item.health AS item_health,
			item.power AS item_power,
			item.price AS item_price
		`).
		Scan(&rows)
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	entries := make([]InventoryListEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, InventoryListEntry{
			InventoryId: row.InventoryId,
			Item: InventoryItem{
				Id:    row.ItemId,
				Name:  row.ItemName,
				Stats: InventoryItemStats{Health: row.ItemHealth, Power: row.ItemPower},
				Price: row.ItemPrice,
			},
		})
	}

	return entries, nil
}

func (s *inventoryService) itemDetail(itemId uint64) (*model.Item, *reject.ProblemWithTrace) {
	var item model.Item
	result := s.db.First(&item, itemId)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.MissingResourceProblem("Item not found", itemNotFound),
		}
	}
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	return &item, nil
}
