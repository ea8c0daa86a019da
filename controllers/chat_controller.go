package controllers

import (
	"finsmart/dto"
	"finsmart/errors"
	"finsmart/response"
	"finsmart/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chatService *services.ChatService
}

func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

func getUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := val.(uint)
	return userID, ok
}

// GetSessions trả về danh sách đoạn chat của user, mới cập nhật nhất trước
func (ctl *ChatController) GetSessions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	sessions := ctl.chatService.ListSessions(userID)
	response.Success(c, sessions)
}

// CreateSession mở đoạn chat mới với lời chào mặc định
func (ctl *ChatController) CreateSession(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	sessionID, messages := ctl.chatService.StartNewSession(userID)
	response.Success(c, gin.H{
		"session_id": sessionID,
		"messages":   messages,
	})
}

// GetSessionMessages nạp transcript của một đoạn chat đã có
func (ctl *ChatController) GetSessionMessages(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	sessionID := c.Param("sessionId")
	if sessionID == "" {
		response.BadRequest(c, "session_id không hợp lệ")
		return
	}

	messages := ctl.chatService.SelectSession(userID, sessionID)
	response.Success(c, gin.H{
		"session_id": sessionID,
		"messages":   messages,
	})
}

// SendMessage xử lý một lượt gửi tin của người dùng
func (ctl *ChatController) SendMessage(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var input dto.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "message không hợp lệ")
		return
	}

	botMessage, err := ctl.chatService.SendMessage(c.Request.Context(), userID, input.SessionID, input.Message)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeBusySession) {
			response.Conflict(c, "Đoạn chat đang xử lý tin nhắn trước, vui lòng đợi")
			return
		}
		if appErr := errors.GetAppError(err); appErr != nil {
			response.BadRequest(c, appErr.Message)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"session_id": input.SessionID,
		"message":    botMessage,
	})
}
