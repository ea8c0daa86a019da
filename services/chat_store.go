package services

import (
	"time"

	"finsmart/dto"
	"finsmart/errors"
	"finsmart/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TranscriptStore giao tiếp với bảng chat_history.
// Mỗi transcript gắn với đúng một cặp (user_id, session_id).
type TranscriptStore interface {
	ListSessions(userID uint) ([]dto.SessionSummary, error)
	// LoadTranscript trả về found=false khi chưa từng lưu transcript cho session,
	// khác với transcript rỗng.
	LoadTranscript(userID uint, sessionID string) (models.ChatMessageList, bool, error)
	UpsertTranscript(userID uint, sessionID string, messages models.ChatMessageList, updatedAt time.Time) error
	SetSessionTitle(userID uint, sessionID string, title string) error
}

// GormTranscriptStore implement TranscriptStore trên Postgres qua gorm
type GormTranscriptStore struct {
	db *gorm.DB
}

func NewGormTranscriptStore(db *gorm.DB) *GormTranscriptStore {
	return &GormTranscriptStore{db: db}
}

func (s *GormTranscriptStore) ListSessions(userID uint) ([]dto.SessionSummary, error) {
	var rows []models.ChatHistory
	err := s.db.
		Select("session_id, created_at, title").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeStore, "Không tải được danh sách đoạn chat", err)
	}

	sessions := make([]dto.SessionSummary, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, dto.SessionSummary{
			SessionID: row.SessionID,
			Title:     row.Title,
			CreatedAt: row.CreatedAt,
		})
	}
	return sessions, nil
}

func (s *GormTranscriptStore) LoadTranscript(userID uint, sessionID string) (models.ChatMessageList, bool, error) {
	var row models.ChatHistory
	err := s.db.
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewAppError(errors.ErrCodeStore, "Không tải được lịch sử chat", err)
	}
	return row.Messages, true, nil
}

// UpsertTranscript ghi đè transcript theo khóa (user_id, session_id), idempotent
func (s *GormTranscriptStore) UpsertTranscript(userID uint, sessionID string, messages models.ChatMessageList, updatedAt time.Time) error {
	row := models.ChatHistory{
		UserID:    userID,
		SessionID: sessionID,
		Messages:  messages,
		UpdatedAt: updatedAt,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"messages", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return errors.NewAppError(errors.ErrCodeStore, "Lỗi lưu lịch sử chat", err)
	}
	return nil
}

func (s *GormTranscriptStore) SetSessionTitle(userID uint, sessionID string, title string) error {
	err := s.db.Model(&models.ChatHistory{}).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Update("title", title).Error
	if err != nil {
		return errors.NewAppError(errors.ErrCodeStore, "Lỗi cập nhật tiêu đề đoạn chat", err)
	}
	return nil
}
