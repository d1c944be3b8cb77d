package controllers

import (
	"net/http"

	"invoicing-backend/models"
	"invoicing-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReminderController struct {
	db *gorm.DB
}

func NewReminderController(db *gorm.DB) *ReminderController {
	return &ReminderController{db: db}
}

// ListLogs returns the payment reminder history for the user, newest first
func (rc *ReminderController) ListLogs(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	logs := make([]models.ReminderLog, 0)
	if err := rc.db.
		Where("user_id = ?", uid).
		Order("sent_at DESC").
		Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
