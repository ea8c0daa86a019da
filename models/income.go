package models

import "time"

// Income một khoản thu nhập của người dùng
type Income struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	Amount     float64   `json:"amount"`
	Source     string    `json:"source"`
	Note       string    `json:"note"`
	ReceivedAt time.Time `json:"received_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Income) TableName() string {
	return "income"
}
