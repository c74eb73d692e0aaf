package auth

import (
	"net/http"

	"github.com/forgeworks/itemforge-backend/internal/pkg/reject"
	"github.com/forgeworks/itemforge-backend/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type authHandler struct {
	auth *authService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, jwtSecret []byte) {
	handler := authHandler{
		auth: &authService{db: db, jwtSecret: jwtSecret},
	}

	rg.POST("/sign-up", handler.signUp)
	rg.POST("/sign-in", handler.signIn)
}

type SignUpRequest struct {
	Id            string `json:"id"`
	Password      string `json:"password"`
	PasswordCheck string `json:"passwordCheck"`
	Name          string `json:"name"`
}

type SignInRequest struct {
	Id       string `json:"id"`
	Password string `json:"password"`
}

func (h authHandler) signUp(c *gin.Context) {
	body := SignUpRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if err := h.auth.signUp(body); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "account registered"})
}

func (h authHandler) signIn(c *gin.Context) {
	body := SignInRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	token, err := h.auth.signIn(body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	// http-only cookie so client-side script never sees the token
	c.SetCookie(session.CookieName, session.Scheme+" "+token, int(session.Lifetime.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed in"})
}
