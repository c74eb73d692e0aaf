package inventory

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/forgeworks/itemforge-backend/internal/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDbSeq int64

func newTestDb(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:inventory_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Character{}, &model.Item{}, &model.InventoryEntry{}))
	return db
}

const ownerId uint64 = 1

func newCharacter(t *testing.T, db *gorm.DB, userId uint64, name string) model.Character {
	t.Helper()
	character := model.Character{UserId: userId, Name: name, Level: 1, Health: 500, Power: 100, Money: 10000}
	require.NoError(t, db.Create(&character).Error)
	return character
}

func swordRequest() AddItemRequest {
	return AddItemRequest{
		Name:        "Sword",
		Health:      0,
		Power:       5,
		Price:       100,
		Description: "a plain sword",
	}
}

func TestAddItemRequiresCharacter(t *testing.T) {
	service := &inventoryService{db: newTestDb(t)}

	_, problem := service.addItem(ownerId, swordRequest())
	require.NotNil(t, problem)
	assert.Equal(t, http.StatusNotFound, problem.Problem.Status)
	assert.Equal(t, noCharacter, problem.Problem.Code)
}

func TestAddItemCreatesCatalogAndSnapshot(t *testing.T) {
	db := newTestDb(t)
	service := &inventoryService{db: db}
	character := newCharacter(t, db, ownerId, "Hero")

	entry, problem := service.addItem(ownerId, swordRequest())
	require.Nil(t, problem)

	assert.Equal(t, character.Id, entry.CharacterId)
	assert.Equal(t, "Sword", entry.Name)
	assert.Equal(t, 0, entry.Health)
	assert.Equal(t, 5, entry.Power)
	assert.Equal(t, int64(100), entry.Price)

	var item model.Item
	require.NoError(t, db.First(&item, entry.ItemId).Error)
	assert.Equal(t, "Sword", item.Name)
	assert.Equal(t, "a plain sword", item.Description)
}

func TestAddItemResolvesOldestCharacter(t *testing.T) {
	db := newTestDb(t)
	service := &inventoryService{db: db}
	first := newCharacter(t, db, ownerId, "Hero")
	newCharacter(t, db, ownerId, "Sidekick")

	entry, problem := service.addItem(ownerId, swordRequest())
	require.Nil(t, problem)
	assert.Equal(t, first.Id, entry.CharacterId)
}

func TestAddItemDuplicateNameLeavesCatalogClean(t *testing.T) {
	db := newTestDb(t)
	service := &inventoryService{db: db}
	newCharacter(t, db, ownerId, "Hero")

	_, problem := service.addItem(ownerId, swordRequest())
	require.Nil(t, problem)

	_, problem = service.addItem(ownerId, swordRequest())
	require.NotNil(t, problem)
	assert.Equal(t, http.StatusConflict, problem.Problem.Status)
	assert.Equal(t, duplicateItem, problem.Problem.Code)

	var items int64
	require.NoError(t, db.Model(&model.Item{}).Count(&items).Error)
	assert.Equal(t, int64(1), items, "rejected duplicate must not add a catalog row")
}

func TestAddItemRollsBackItemWhenEntryFails(t *testing.T) {
	db := newTestDb(t)
	service := &inventoryService{db: db}
	newCharacter(t, db, ownerId, "Hero")

	forced := errors.New("forced entry failure")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("force_entry_failure", func(tx *gorm.DB) {
		if tx.Statement.Table == (model.InventoryEntry{}).TableName() {
			tx.AddError(forced)
		}
	}))

	_, problem := service.addItem(ownerId, swordRequest())
	require.NotNil(t, problem)
	assert.Equal(t, http.StatusInternalServerError, problem.Problem.Status)

	var items int64
	require.NoError(t, db.Model(&model.Item{}).Count(&items).Error)
	assert.Zero(t, items, "catalog item must roll back with the failed entry")
}

func TestUpdateItemPartialFields(t *testing.T) {
	db := newTestDb(t)
	service := &inventoryService{db: db}
	newCharacter(t, db, ownerId, "Hero")

	entry, problem := service.addItem(ownerId, swordRequest())
	require.Nil(t, problem)

	// an explicit zero is an update, an absent field is not
	zero := 0
	name := "Broken Sword"
	updated, problem := service.updateItem(entry.ItemId, UpdateItemRequest{Name: &name, Power: &zero})
	require.Nil(t, problem)

	assert.Equal(t, "Broken Sword", updated.Name)
	assert.Equal(t, 0, updated.Power)
	assert.Equal(t, 0, updated.Health)
	assert.Equal(t, "a plain sword", updated.Description)
	assert.Equal(t, int64(100), updated.Price, "price must never change")
}

func TestUpdateItemDoesNotTouchSnapshots(t *testing.T) {
	db := newTestDb(t)
	service := &inventoryService{db: db}
	newCharacter(t, db, ownerId, "Hero")

	entry, problem := service.addItem(ownerId, swordRequest())
	require.Nil(t, problem)

	name := "Renamed Sword"
	power := 99
	_, problem = service.updateItem(entry.ItemId, UpdateItemRequest{Name: &name, Power: &power})
	require.Nil(t, problem)

	var snapshot model.InventoryEntry
	require.NoError(t, db.First(&snapshot, entry.Id).Error)
	assert.Equal(t, "Sword", snapshot.Name)
	assert.Equal(t, 5, snapshot.Power)
	assert.Equal(t, int64(100), snapshot.Price)
}

func TestUpdateItemEmptyBody(t *testing.T) {
	db := newTestDb(t)
	service := &inventoryService{db: db}
	newCharacter(t, db, ownerId, "Hero")

	entry, problem := service.addItem(ownerId, swordRequest())
	require.Nil(t, problem)

	_, problem = service.updateItem(entry.ItemId, UpdateItemRequest{})
	require.NotNil(t, problem)
	assert.Equal(t, http.StatusBadRequest, problem.Problem.Status)
	assert.Equal(t, itemEmptyUpdate, problem.Problem.Code)
}

func TestUpdateItemNotFound(t *testing.T) {
	service := &inventoryService{db: newTestDb(t)}

	name := "Ghost Sword"
	_, problem := service.updateItem(12345, UpdateItemRequest{Name: &name})
	require.NotNil(t, problem)
	assert.Equal(t, http.StatusNotFound, problem.Problem.Status)
	assert.Equal(t, itemNotFound, problem.Problem.Code)
}

func TestListForCharacterUnknownId(t *testing.T) {
	service := &inventoryService{db: newTestDb(t)}

	_, problem := service.listForCharacter(12345)
	require.NotNil(t, problem)
	assert.Equal(t, http.StatusNotFound, problem.Problem.Status)
	assert.Equal(t, ownerCharacterGone, problem.Problem.Code)
}

func TestListForCharacterEmptyIsSuccess(t *testing.T) {
	db := newTestDb(t)
	service := &inventoryService{db: db}
	character := newCharacter(t, db, ownerId, "Hero")

	entries, problem := service.listForCharacter(character.Id)
	require.Nil(t, problem)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestListForCharacterJoinsCatalogItem(t *testing.T) {
	db := newTestDb(t)
	service := &inventoryService{db: db}
	character := newCharacter(t, db, ownerId, "Hero")

	entry, problem := service.addItem(ownerId, swordRequest())
	require.Nil(t, problem)

	entries, problem := service.listForCharacter(character.Id)
	require.Nil(t, problem)
	require.Len(t, entries, 1)

	assert.Equal(t, entry.Id, entries[0].InventoryId)
	assert.Equal(t, entry.ItemId, entries[0].Item.Id)
	assert.Equal(t, "Sword", entries[0].Item.Name)
	assert.Equal(t, 0, entries[0].Item.Stats.Health)
	assert.Equal(t, 5, entries[0].Item.Stats.Power)
	assert.Equal(t, int64(100), entries[0].Item.Price)
}

func TestItemDetail(t *testing.T) {
	db := newTestDb(t)
	service := &inventoryService{db: db}
	newCharacter(t, db, ownerId, "Hero")

	entry, problem := service.addItem(ownerId, swordRequest())
	require.Nil(t, problem)

	item, problem := service.itemDetail(entry.ItemId)
	require.Nil(t, problem)
	assert.Equal(t, "Sword", item.Name)
	assert.Equal(t, int64(100), item.Price)
	assert.Equal(t, "a plain sword", item.Description)

	_, problem = service.itemDetail(entry.ItemId + 1000)
	require.NotNil(t, problem)
	assert.Equal(t, http.StatusNotFound, problem.Problem.Status)
}
