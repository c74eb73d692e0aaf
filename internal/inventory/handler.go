package inventory

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/forgeworks/itemforge-backend/internal/pkg/reject"
	"github.com/forgeworks/itemforge-backend/internal/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type inventoryHandler struct {
	inventory *inventoryService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, requireSession gin.HandlerFunc) {
	handler := inventoryHandler{
		inventory: &inventoryService{db: db},
	}

	rg.POST("/items", requireSession, handler.addItem)
	rg.PUT("/items/:id", requireSession, handler.updateItem)
	rg.GET("/items/:id", requireSession, handler.getItemDetail)
	rg.GET("/inventory/:characterId", requireSession, handler.getInventory)
}

type AddItemRequest struct {
	Name        string `json:"name"`
	Health      int    `json:"health"`
	Power       int    `json:"power"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// UpdateItemRequest uses pointer fields so a legitimate zero stat is an
// update and an absent field keeps its prior value. Price is not here at
// all: it cannot be edited.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Health      *int    `json:"health"`
	Power       *int    `json:"power"`
	Description *string `json:"description"`
}

func (h inventoryHandler) addItem(c *gin.Context) {
	body := AddItemRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if strings.TrimSpace(body.Name) == "" {
		c.JSON(http.StatusBadRequest, reject.ValidationProblem("Item name is required", itemNameRequired))
		return
	}

	owner := utils.GetCurrentUser(c)
	entry, err := h.inventory.addItem(owner.Id, body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "item added to inventory",
		"inventory": entry,
	})
}

func (h inventoryHandler) updateItem(c *gin.Context) {
	itemId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := UpdateItemRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	item, err := h.inventory.updateItem(itemId, body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "item updated",
		"item":    item,
	})
}

func (h inventoryHandler) getInventory(c *gin.Context) {
	characterId, parseErr := strconv.ParseUint(c.Param("characterId"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	entries, err := h.inventory.listForCharacter(characterId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h inventoryHandler) getItemDetail(c *gin.Context) {
	itemId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	item, err := h.inventory.itemDetail(itemId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, item)
}
