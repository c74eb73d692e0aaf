package character

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/forgeworks/itemforge-backend/internal/pkg/reject"
	"github.com/forgeworks/itemforge-backend/internal/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type characterHandler struct {
	character *characterService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, requireSession gin.HandlerFunc) {
	handler := characterHandler{
		character: &characterService{db: db},
	}

	routes := rg.Group("/characters")
	routes.POST("", requireSession, handler.createCharacter)
	routes.GET("/:name", requireSession, handler.getCharacterDetail)
	routes.DELETE("/:name", requireSession, handler.deleteCharacter)
}

type CreateCharacterRequest struct {
	Name string `json:"name"`
}

func (h characterHandler) createCharacter(c *gin.Context) {
	body := CreateCharacterRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, reject.ValidationProblem("Character name is required", characterNameRequired))
		return
	}

	owner := utils.GetCurrentUser(c)
	created, err := h.character.create(owner.Id, name)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "character created",
		"character": created,
	})
}

func (h characterHandler) getCharacterDetail(c *gin.Context) {
	viewer := utils.GetCurrentUser(c)

	detail, err := h.character.findByName(c.Param("name"), viewer.Id)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h characterHandler) deleteCharacter(c *gin.Context) {
	owner := utils.GetCurrentUser(c)
	name := c.Param("name")

	if err := h.character.deleteOwned(owner.Id, name); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("character %s deleted", name)})
}
