package controllers

import (
	"net/http"

	"invoicing-backend/models"
	"invoicing-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileController struct {
	db *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

type UpdateProfileInput struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
}

type UpdateNotificationsInput struct {
	PaymentRemindersEnabled *bool `json:"paymentRemindersEnabled" binding:"required"`
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var user models.User
	if err := pc.db.First(&user, "id = ?", uid).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":                   user.Email,
		"name":                    user.Name,
		"company":                 user.Company,
		"paymentRemindersEnabled": user.PaymentRemindersEnabled,
	})
}

func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := pc.db.First(&user, "id = ?", uid).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	user.Name = input.Name
	user.Company = input.Company

	if err := pc.db.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func (pc *ProfileController) UpdateNotifications(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input UpdateNotificationsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := pc.db.Model(&models.User{}).
		Where("id = ?", uid).
		Update("payment_reminders_enabled", *input.PaymentRemindersEnabled).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
