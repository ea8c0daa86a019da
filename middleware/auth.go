package middleware

import (
	"strings"

	"finsmart/config"
	"finsmart/response"
	"finsmart/services"
	"finsmart/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware xử lý authentication.
// Ưu tiên Bearer token; nếu không có thì nhận user_id đã mã hóa
// (bản client lưu trong localStorage) qua header X-User-Token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			userID, err := services.GetUserIDFromToken(tokenString)
			if err != nil {
				response.Unauthorized(c)
				c.Abort()
				return
			}
			c.Set("userID", userID)
			c.Next()
			return
		}

		encrypted := c.GetHeader("X-User-Token")
		if encrypted == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		userID, err := services.DecryptUserID(encrypted, config.GetEnv("SECRET_KEY"))
		if err != nil {
			// Giải mã thất bại: chỉ ghi log, người dùng coi như chưa đăng nhập
			utils.LogError("Không thể giải mã user_id: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// ErrorHandler xử lý lỗi
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			response.ServerError(c)
		}
	}
}
