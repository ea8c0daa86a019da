package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finsmart/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const financeCacheTTL = 30 * time.Minute

// FinanceContext dữ liệu chi tiêu và thu nhập đã serialize,
// dùng làm ngữ cảnh cho các lời gọi model
type FinanceContext struct {
	Transactions string `json:"transactions"`
	Income       string `json:"income"`
}

// FinanceDataService đọc dữ liệu tài chính của người dùng, cache qua Redis
// để mỗi người dùng chỉ phải query một lần trong suốt phiên chat.
type FinanceDataService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewFinanceDataService(db *gorm.DB, rdb *redis.Client) *FinanceDataService {
	return &FinanceDataService{db: db, rdb: rdb}
}

func financeCacheKey(userID uint) string {
	return fmt.Sprintf("finance_context:%d", userID)
}

// GetContext trả về dữ liệu tài chính của user, ưu tiên cache
func (s *FinanceDataService) GetContext(ctx context.Context, userID uint) (*FinanceContext, error) {
	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, financeCacheKey(userID)).Result()
		if err == nil {
			var cached FinanceContext
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		return nil, err
	}

	var income []models.Income
	if err := s.db.Where("user_id = ?", userID).Find(&income).Error; err != nil {
		return nil, err
	}

	txJSON, _ := json.Marshal(transactions)
	incomeJSON, _ := json.Marshal(income)

	fc := &FinanceContext{
		Transactions: string(txJSON),
		Income:       string(incomeJSON),
	}

	if s.rdb != nil {
		b, _ := json.Marshal(fc)
		s.rdb.Set(ctx, financeCacheKey(userID), b, financeCacheTTL)
	}

	return fc, nil
}

// Invalidate xóa cache khi dữ liệu tài chính thay đổi
func (s *FinanceDataService) Invalidate(ctx context.Context, userID uint) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, financeCacheKey(userID)).Err()
}

// SweepCache xóa toàn bộ cache dữ liệu tài chính, chạy theo lịch hàng đêm
func (s *FinanceDataService) SweepCache(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}

	iter := s.rdb.Scan(ctx, 0, "finance_context:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
