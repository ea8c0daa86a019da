package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// NewSessionID sinh định danh cho một đoạn chat mới: ngày hiện tại kèm hậu tố ngẫu nhiên.
// Chỉ cần duy nhất trong danh sách đoạn chat của một người dùng.
func NewSessionID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("session-%s-%d", time.Now().Format("2006-01-02"), suffix)
}
