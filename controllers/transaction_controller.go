package controllers

import (
	"finsmart/models"
	"finsmart/response"
	"finsmart/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TransactionController struct {
	db      *gorm.DB
	finance *services.FinanceDataService
}

func NewTransactionController(db *gorm.DB, finance *services.FinanceDataService) *TransactionController {
	return &TransactionController{db: db, finance: finance}
}

// GetTransactions danh sách chi tiêu của user
func (ctl *TransactionController) GetTransactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var transactions []models.Transaction
	if err := ctl.db.Where("user_id = ?", userID).Order("spent_at DESC").Find(&transactions).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, transactions, len(transactions))
}

// CreateTransaction thêm một khoản chi tiêu
func (ctl *TransactionController) CreateTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var input models.Transaction
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	input.ID = 0
	input.UserID = userID

	if err := ctl.db.Create(&input).Error; err != nil {
		response.ServerError(c)
		return
	}

	// Dữ liệu thay đổi, bỏ cache ngữ cảnh tài chính của user
	ctl.finance.Invalidate(c.Request.Context(), userID)

	response.Success(c, input)
}

// GetIncome danh sách thu nhập của user
func (ctl *TransactionController) GetIncome(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var income []models.Income
	if err := ctl.db.Where("user_id = ?", userID).Order("received_at DESC").Find(&income).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, income, len(income))
}

// CreateIncome thêm một khoản thu nhập
func (ctl *TransactionController) CreateIncome(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var input models.Income
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	input.ID = 0
	input.UserID = userID

	if err := ctl.db.Create(&input).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctl.finance.Invalidate(c.Request.Context(), userID)

	response.Success(c, input)
}
