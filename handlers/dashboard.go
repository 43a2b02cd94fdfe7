package handlers

import (
	"net/http"
	"travelworld/models"
	"travelworld/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Dashboard(c *gin.Context, user *models.User) {
	count, err := models.CompletedCount()
	if err != nil {
		utils.Logger.Error("completed count", zap.Error(err))
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
		"user":           user,
		"completedCount": count,
	})
}

// CompletedAdd records a finished trip of the current user
func CompletedAdd(c *gin.Context, user *models.User) {
	if err := models.CompletedAdd(user.ID); err != nil {
		utils.Logger.Error("completed add", zap.Error(err), zap.Uint64("user_id", user.ID))
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}
