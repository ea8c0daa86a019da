package controllers

import (
	"finsmart/config"
	"finsmart/models"
	"finsmart/response"

	"github.com/gin-gonic/gin"
)

// GetProfile trả về thông tin cá nhân của user đang đăng nhập
func GetProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var user models.User
	if err := config.DB.Preload("Wallets").First(&user, userID).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, user)
}

// UpdateAvatar cập nhật URL avatar sau khi upload
func UpdateAvatar(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var input struct {
		Avatar string `json:"avatar" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := config.DB.Model(&models.User{}).Where("user_id = ?", userID).Update("avatar", input.Avatar).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, nil)
}
