package dto

import "time"

// SessionSummary một dòng trong danh sách lịch sử chat
type SessionSummary struct {
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageInput struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// IntentDecision kết quả phân tích ý định của một câu hỏi.
// Không được lưu, chỉ dùng ngay trong lượt chat hiện tại.
type IntentDecision struct {
	IsPredictionRequest bool   `json:"is_prediction_request"`
	ChartType           string `json:"chart_type"`
	Periods             int    `json:"periods"`
	ResponseMessage     string `json:"response_message"`
}
