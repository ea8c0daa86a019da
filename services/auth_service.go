package services

import (
	"errors"
	"fmt"
	"strings"

	"finsmart/config"
	apperrors "finsmart/errors"
	"finsmart/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// HashPassword băm mật khẩu bằng bcrypt
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// GetUserByUsername tìm user theo username
func GetUserByUsername(username string) (models.User, error) {
	var user models.User
	result := config.DB.Where("username = ?", strings.ToLower(username)).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return user, fmt.Errorf("không tìm thấy người dùng %s", username)
	}

	if result.Error != nil {
		return user, result.Error
	}

	return user, nil
}

// CreateUser đăng ký tài khoản mới: kiểm tra trùng username, băm mật khẩu,
// tạo dòng user kèm một ví rỗng
func CreateUser(input models.User, password string) (models.User, error) {
	var existing models.User
	err := config.DB.Where("username = ?", input.Username).First(&existing).Error
	if err == nil {
		return models.User{}, apperrors.NewAppError(apperrors.ErrCodeUserExists, "Tên đăng nhập đã tồn tại", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi kiểm tra tài khoản", err)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	input.PasswordHash = hashed

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&input).Error; err != nil {
			return err
		}
		wallet := models.Wallet{UserID: input.ID}
		return tx.Create(&wallet).Error
	})
	if err != nil {
		return models.User{}, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi tạo tài khoản", err)
	}

	return input, nil
}
