package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// FinanceCacheSweeper định nghĩa interface cho việc dọn cache dữ liệu tài chính
type FinanceCacheSweeper interface {
	SweepCache(ctx context.Context) error
}

var financeCacheSweeper FinanceCacheSweeper

// SetFinanceCacheSweeper thiết lập implementation cho FinanceCacheSweeper
func SetFinanceCacheSweeper(sweeper FinanceCacheSweeper) {
	financeCacheSweeper = sweeper
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Cron job chạy lúc 0h mỗi ngày: dọn cache ngữ cảnh tài chính
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("Đang dọn cache dữ liệu tài chính lúc: %v", now)
		if financeCacheSweeper == nil {
			log.Printf("Lỗi: FinanceCacheSweeper chưa được thiết lập")
			return
		}
		if err := financeCacheSweeper.SweepCache(context.Background()); err != nil {
			log.Printf("Lỗi khi dọn cache dữ liệu tài chính: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
