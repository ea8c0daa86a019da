package routes

import (
	"context"
	"net/http"

	"finsmart/controllers"
	middlewares "finsmart/middleware"
	"finsmart/services"
	"finsmart/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody) *services.FinanceDataService {

	log := logger.NewDefaultLogger(logger.InfoLevel)
	llm := services.NewGeminiClient()
	financeService := services.NewFinanceDataService(db, redisCli)

	chatService := services.NewChatService(services.ChatServiceOptions{
		Store:      services.NewGormTranscriptStore(db),
		Classifier: services.NewIntentClassifier(llm, log),
		Responder:  services.NewResponder(llm),
		Forecast:   services.NewForecastClient(),
		Finance:    financeService,
		Logger:     log,
		Melody:     m,
	})

	chatController := controllers.NewChatController(chatService)
	forecastController := controllers.NewForecastController(services.NewForecastClient())
	transactionController := controllers.NewTransactionController(db, financeService)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/auth/google", controllers.AuthGoogle)

	v1.GET("/profile", middlewares.AuthMiddleware(), controllers.GetProfile)
	v1.PUT("/avatar", middlewares.AuthMiddleware(), controllers.UpdateAvatar)

	v1.GET("/chat/sessions", middlewares.AuthMiddleware(), chatController.GetSessions)
	v1.POST("/chat/sessions", middlewares.AuthMiddleware(), chatController.CreateSession)
	v1.GET("/chat/sessions/:sessionId", middlewares.AuthMiddleware(), chatController.GetSessionMessages)
	v1.POST("/chat/messages", middlewares.AuthMiddleware(), chatController.SendMessage)

	v1.GET("/forecast/:kind", middlewares.AuthMiddleware(), forecastController.GetForecast)

	v1.GET("/transactions", middlewares.AuthMiddleware(), transactionController.GetTransactions)
	v1.POST("/transactions", middlewares.AuthMiddleware(), transactionController.CreateTransaction)
	v1.GET("/income", middlewares.AuthMiddleware(), transactionController.GetIncome)
	v1.POST("/income", middlewares.AuthMiddleware(), transactionController.CreateIncome)

	v1.POST("/img/upload", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lỗi khi mở file"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "avatars"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload avatar thành công",
			"url":     resp.SecureURL,
		})
	})

	return financeService
}
