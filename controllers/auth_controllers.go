package controllers

import (
	"context"
	"strings"

	"finsmart/config"
	"finsmart/dto"
	"finsmart/models"
	"finsmart/response"
	"finsmart/services"
	"finsmart/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

func Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := services.GetUserByUsername(input.Username)
	if err != nil {
		response.BadRequest(c, "Tên đăng nhập hoặc mật khẩu không hợp lệ")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		response.BadRequest(c, "Tên đăng nhập hoặc mật khẩu không hợp lệ")
		return
	}

	accessToken, err := services.GenerateToken(services.UserInfo{UserId: user.ID}, 60*24*3)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// user_id mã hóa để client lưu vào localStorage, trang AI giải mã khi load
	encryptedUserID, err := services.EncryptUserID(user.ID, config.GetEnv("SECRET_KEY"))
	if err != nil {
		response.ServerError(c)
		return
	}

	userResponse := dto.UserLoginResponse{
		UserID:      user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Email:       user.Email,
		Phone:       user.PhoneNumber,
		Avatar:      user.Avatar,
		DateOfBirth: user.DateOfBirth,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	response.Success(c, gin.H{
		"user_info":   userResponse,
		"accessToken": accessToken,
		"user_id":     encryptedUserID,
	})
}

func Logout(c *gin.Context) {
	cookies := c.Request.Cookies()
	for _, cookie := range cookies {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}

	response.Success(c, nil)
}

func RegisterUser(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := validator.ValidateRegisterInput(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := services.CreateUser(models.User{
		Username:    strings.ToLower(input.Username),
		FullName:    input.FullName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		DateOfBirth: input.DateOfBirth,
	}, input.Password)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{"user_id": user.ID})
}

func verifyGoogleIDToken(tokenId string) (*idtoken.Payload, error) {
	return idtoken.Validate(context.Background(), tokenId, config.GetEnv("GOOGLE_CLIENT_ID"))
}

// AuthGoogle xử lý yêu cầu xác thực từ Google
func AuthGoogle(c *gin.Context) {
	var token struct {
		TokenId string `json:"tokenId"`
	}

	if err := c.ShouldBindJSON(&token); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payload, err := verifyGoogleIDToken(token.TokenId)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	googleUser := dto.GoogleUser{
		Name:          payload.Claims["name"].(string),
		Email:         payload.Claims["email"].(string),
		VerifiedEmail: payload.Claims["email_verified"].(bool),
		Picture:       payload.Claims["picture"].(string),
	}
	if !googleUser.VerifiedEmail {
		response.BadRequest(c, "Email chưa được xác thực")
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", googleUser.Email).First(&user)
	if result.Error != nil {
		// Lần đầu đăng nhập bằng Google: tạo tài khoản mới kèm ví
		user = models.User{
			Username: strings.ToLower(googleUser.Email),
			FullName: googleUser.Name,
			Email:    googleUser.Email,
			Avatar:   googleUser.Picture,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			response.ServerError(c)
			return
		}
		if err := config.DB.Create(&models.Wallet{UserID: user.ID}).Error; err != nil {
			response.ServerError(c)
			return
		}
	}

	accessToken, err := services.GenerateToken(services.UserInfo{UserId: user.ID}, 60*24*3)
	if err != nil {
		response.ServerError(c)
		return
	}

	encryptedUserID, err := services.EncryptUserID(user.ID, config.GetEnv("SECRET_KEY"))
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"accessToken": accessToken,
		"user_id":     encryptedUserID,
	})
}
