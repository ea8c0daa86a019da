package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ChatMessage một tin nhắn trong transcript của đoạn chat
type ChatMessage struct {
	Sender  string `json:"sender"` // "user" or "bot"
	Type    string `json:"type"`   // "text" or "image"
	Content string `json:"content"`
	// Caption lời dẫn hiển thị kèm biểu đồ dự đoán
	Caption string `json:"caption,omitempty"`
}

// ChatMessageList transcript được lưu nguyên khối dưới dạng JSONB
type ChatMessageList []ChatMessage

func (l ChatMessageList) Value() (driver.Value, error) {
	if l == nil {
		l = ChatMessageList{}
	}
	return json.Marshal(l)
}

func (l *ChatMessageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("không scan được transcript từ kiểu %T", value)
	}
	return json.Unmarshal(raw, l)
}

type ChatHistory struct {
	ID        int             `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"uniqueIndex:idx_user_session"`
	SessionID string          `json:"session_id" gorm:"uniqueIndex:idx_user_session"`
	Title     string          `json:"title"`
	Messages  ChatMessageList `json:"messages" gorm:"type:jsonb"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (ChatHistory) TableName() string {
	return "chat_history"
}
