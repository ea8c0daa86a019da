package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"finsmart/constants"
	"finsmart/dto"
	"finsmart/errors"
	"finsmart/models"
	"finsmart/services/logger"

	"github.com/olahol/melody"
)

// ChatService điều phối một lượt chat: nhận câu hỏi, phân tích ý định,
// rẽ nhánh giữa trả lời thường và vẽ biểu đồ dự đoán, rồi lưu transcript.
type ChatService struct {
	store         TranscriptStore
	classifier    *IntentClassifier
	responder     *Responder
	forecast      ForecastClient
	finance       *FinanceDataService
	logger        logger.Logger
	melody        *melody.Melody
	debounce      time.Duration
	conversations *ConversationManager
}

// ChatServiceOptions mọi phụ thuộc đều được inject, không dùng biến toàn cục
type ChatServiceOptions struct {
	Store      TranscriptStore
	Classifier *IntentClassifier
	Responder  *Responder
	Forecast   ForecastClient
	Finance    *FinanceDataService
	Logger     logger.Logger
	Melody     *melody.Melody
	// Debounce khoảng nghỉ trước khi gọi model trả lời, mặc định 1s
	Debounce time.Duration
}

func NewChatService(opts ChatServiceOptions) *ChatService {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	debounce := opts.Debounce
	if debounce == 0 {
		debounce = time.Second
	}
	return &ChatService{
		store:         opts.Store,
		classifier:    opts.Classifier,
		responder:     opts.Responder,
		forecast:      opts.Forecast,
		finance:       opts.Finance,
		logger:        log,
		melody:        opts.Melody,
		debounce:      debounce,
		conversations: NewConversationManager(),
	}
}

// ListSessions trả về danh sách đoạn chat, mới cập nhật nhất đứng trước.
// Lỗi store chỉ ghi log, UI nhận danh sách rỗng.
func (s *ChatService) ListSessions(userID uint) []dto.SessionSummary {
	sessions, err := s.store.ListSessions(userID)
	if err != nil {
		s.logger.Error("Fetch error: %v", err)
		return []dto.SessionSummary{}
	}
	return sessions
}

// StartNewSession tạo đoạn chat mới với định danh vừa sinh và lời chào mặc định.
// Không gọi mạng.
func (s *ChatService) StartNewSession(userID uint) (string, models.ChatMessageList) {
	sessionID := NewSessionID()
	s.conversations.Reset(userID, sessionID)
	messages, _ := s.conversations.Get(userID, sessionID)
	return sessionID, messages
}

// SelectSession nạp transcript đã lưu của một đoạn chat vào bộ nhớ.
// Chưa có transcript hoặc transcript rỗng thì trả về lời chào mặc định.
func (s *ChatService) SelectSession(userID uint, sessionID string) models.ChatMessageList {
	stored, found, err := s.store.LoadTranscript(userID, sessionID)
	if err != nil {
		s.logger.Error("Lỗi tải lịch sử chat: %v", err)
		s.conversations.Reset(userID, sessionID)
	} else if !found {
		s.conversations.Reset(userID, sessionID)
	} else {
		s.conversations.Replace(userID, sessionID, stored)
	}

	messages, _ := s.conversations.Get(userID, sessionID)
	return messages
}

// SendMessage xử lý một lượt gửi của người dùng. Tin nhắn của người dùng luôn
// được nối vào transcript trước mọi phản hồi của bot. Trả về tin nhắn bot của
// lượt này, nil nếu lượt bị bỏ qua.
func (s *ChatService) SendMessage(ctx context.Context, userID uint, sessionID string, text string) (*models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewAppError(errors.ErrCodeEmptyMessage, "Tin nhắn trống", nil)
	}
	if userID == 0 || sessionID == "" {
		return nil, errors.NewAppError(errors.ErrCodeNoSession, "Chưa chọn đoạn chat hoặc chưa đăng nhập", nil)
	}

	// Nạp transcript nếu client gửi thẳng vào session chưa mở
	if _, ok := s.conversations.Get(userID, sessionID); !ok {
		s.SelectSession(userID, sessionID)
	}

	if !s.conversations.BeginTurn(userID, sessionID) {
		return nil, errors.NewAppError(errors.ErrCodeBusySession, "Đoạn chat đang xử lý tin nhắn trước", nil)
	}
	defer s.conversations.EndTurn(userID, sessionID)

	lenAfterUser := s.conversations.Append(userID, sessionID, models.ChatMessage{
		Sender:  constants.SenderUser,
		Type:    constants.MessageTypeText,
		Content: text,
	})

	decision := s.classifier.Classify(ctx, text)

	if decision.IsPredictionRequest {
		return s.handleForecastTurn(ctx, userID, sessionID, decision)
	}

	return s.handleAnswerTurn(ctx, userID, sessionID, text, lenAfterUser)
}

// handleForecastTurn vẽ biểu đồ dự đoán cho lượt hiện tại
func (s *ChatService) handleForecastTurn(ctx context.Context, userID uint, sessionID string, decision dto.IntentDecision) (*models.ChatMessage, error) {
	// Loại biểu đồ không nhận diện được: bỏ qua lượt trả lời của bot,
	// không lưu, không báo lỗi (giữ nguyên hành vi cũ)
	if decision.ChartType == "" {
		return nil, nil
	}

	result, err := s.forecast.Predict(ctx, decision.ChartType, userID, decision.Periods)
	if err != nil {
		s.logger.Error("Lỗi khi lấy dự đoán: %v", err)
		result = &dto.ForecastResult{
			ErrorMessage: "Lỗi không xác định từ server\n" + constants.RetryLaterHint,
		}
	}

	var botMessage models.ChatMessage
	if result.ErrorMessage != "" {
		botMessage = models.ChatMessage{
			Sender:  constants.SenderBot,
			Type:    constants.MessageTypeText,
			Content: result.ErrorMessage,
		}
	} else {
		botMessage = models.ChatMessage{
			Sender:  constants.SenderBot,
			Type:    constants.MessageTypeImage,
			Content: result.ImageData,
			Caption: decision.ResponseMessage,
		}
	}

	s.conversations.Append(userID, sessionID, botMessage)
	s.persistTranscript(userID, sessionID)
	s.broadcastTurn(userID, sessionID, botMessage)
	return &botMessage, nil
}

// handleAnswerTurn trả lời câu hỏi tài chính thông thường
func (s *ChatService) handleAnswerTurn(ctx context.Context, userID uint, sessionID string, text string, lenAfterUser int) (*models.ChatMessage, error) {
	// Lượt hỏi đầu tiên của đoạn chat: đặt tiêu đề bằng chính câu hỏi
	if lenAfterUser == 2 {
		if err := s.store.SetSessionTitle(userID, sessionID, text); err != nil {
			s.logger.Error("Lỗi cập nhật tiêu đề: %v", err)
		}
	}

	// Nghỉ một nhịp cho UI ổn định trước khi gọi model
	time.Sleep(s.debounce)

	finance := &FinanceContext{}
	if s.finance != nil {
		fc, err := s.finance.GetContext(ctx, userID)
		if err != nil {
			s.logger.Error("Lỗi tải dữ liệu tài chính: %v", err)
		} else {
			finance = fc
		}
	}

	transcript, _ := s.conversations.Get(userID, sessionID)
	questions, answers := DeriveHistories(transcript)

	answer, err := s.responder.Answer(ctx, text, questions, answers, finance.Transactions, finance.Income)
	if err != nil {
		s.logger.Error("Lỗi gọi model trả lời: %v", err)
		answer = "Xin lỗi, tôi chưa thể trả lời ngay lúc này. " + constants.RetryLaterHint
	}

	botMessage := models.ChatMessage{
		Sender:  constants.SenderBot,
		Type:    constants.MessageTypeText,
		Content: answer,
	}
	s.conversations.Append(userID, sessionID, botMessage)
	s.persistTranscript(userID, sessionID)
	s.broadcastTurn(userID, sessionID, botMessage)
	return &botMessage, nil
}

// CleanMessagesBeforeSave xóa payload ảnh trước khi lưu,
// transcript đã lưu không bao giờ chứa dữ liệu ảnh thô
func CleanMessagesBeforeSave(messages models.ChatMessageList) models.ChatMessageList {
	cleaned := make(models.ChatMessageList, len(messages))
	for i, msg := range messages {
		if msg.Type == constants.MessageTypeImage {
			msg.Content = ""
		}
		cleaned[i] = msg
	}
	return cleaned
}

// persistTranscript ghi đè toàn bộ transcript sau mỗi lượt bot hoàn thành.
// Lỗi lưu chỉ ghi log, không retry.
func (s *ChatService) persistTranscript(userID uint, sessionID string) {
	messages, ok := s.conversations.Get(userID, sessionID)
	if !ok {
		return
	}
	if err := s.store.UpsertTranscript(userID, sessionID, CleanMessagesBeforeSave(messages), time.Now()); err != nil {
		s.logger.Error("Lỗi lưu lịch sử chat: %v", err)
	}
}

// broadcastTurn đẩy lượt trả lời mới qua websocket cho các tab đang mở
func (s *ChatService) broadcastTurn(userID uint, sessionID string, msg models.ChatMessage) {
	if s.melody == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"user_id":    userID,
		"session_id": sessionID,
		"message":    msg,
	})
	if err != nil {
		return
	}
	if err := s.melody.Broadcast(payload); err != nil {
		s.logger.Error("Lỗi broadcast websocket: %v", err)
	}
}
