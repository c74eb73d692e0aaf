package utils

import (
	"net/http"

	"github.com/forgeworks/itemforge-backend/internal/pkg/model"
	"github.com/gin-gonic/gin"
)

const currentUserCtxKey string = "currentUser"

// SetCurrentUser attaches the account resolved by the session guard to
// the request context for downstream handlers.
func SetCurrentUser(user *model.GameUser, ctx *gin.Context) {
	ctx.Set(currentUserCtxKey, user)
}

func GetCurrentUser(ctx *gin.Context) *model.GameUser {
	value, exists := ctx.Get(currentUserCtxKey)
	if !exists {
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return nil
	}
	return value.(*model.GameUser)
}
