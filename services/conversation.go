package services

import (
	"fmt"
	"sync"

	"finsmart/constants"
	"finsmart/models"
)

// conversation trạng thái trong bộ nhớ của một đoạn chat đang mở
type conversation struct {
	messages models.ChatMessageList
	// inFlight chặn lượt gửi thứ hai khi lượt trước chưa xong
	inFlight bool
}

// ConversationManager giữ transcript đang hoạt động theo từng (user, session).
// Transcript chỉ được mutate qua manager, không có đường ghi nào khác.
type ConversationManager struct {
	mu            sync.Mutex
	conversations map[string]*conversation
}

func NewConversationManager() *ConversationManager {
	return &ConversationManager{conversations: make(map[string]*conversation)}
}

func conversationKey(userID uint, sessionID string) string {
	return fmt.Sprintf("%d:%s", userID, sessionID)
}

func defaultTranscript() models.ChatMessageList {
	return models.ChatMessageList{{
		Sender:  constants.SenderBot,
		Type:    constants.MessageTypeText,
		Content: constants.DefaultGreeting,
	}}
}

// Reset đặt lại transcript về tin nhắn chào mặc định
func (m *ConversationManager) Reset(userID uint, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations[conversationKey(userID, sessionID)] = &conversation{
		messages: defaultTranscript(),
	}
}

// Replace nạp transcript đã lưu vào bộ nhớ; transcript rỗng thay bằng lời chào mặc định
func (m *ConversationManager) Replace(userID uint, sessionID string, messages models.ChatMessageList) {
	if len(messages) == 0 {
		messages = defaultTranscript()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations[conversationKey(userID, sessionID)] = &conversation{
		messages: messages,
	}
}

// Get trả về bản sao transcript hiện tại
func (m *ConversationManager) Get(userID uint, sessionID string) (models.ChatMessageList, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.conversations[conversationKey(userID, sessionID)]
	if !ok {
		return nil, false
	}
	out := make(models.ChatMessageList, len(conv.messages))
	copy(out, conv.messages)
	return out, true
}

// Append nối tin nhắn vào cuối transcript và trả về độ dài mới.
// Thứ tự nối là thứ tự hiển thị, không bao giờ sắp xếp lại.
func (m *ConversationManager) Append(userID uint, sessionID string, msg models.ChatMessage) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := conversationKey(userID, sessionID)
	conv, ok := m.conversations[key]
	if !ok {
		conv = &conversation{messages: defaultTranscript()}
		m.conversations[key] = conv
	}
	conv.messages = append(conv.messages, msg)
	return len(conv.messages)
}

// BeginTurn đánh dấu đoạn chat đang xử lý một lượt gửi.
// Trả về false nếu đã có lượt khác chưa hoàn thành.
func (m *ConversationManager) BeginTurn(userID uint, sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := conversationKey(userID, sessionID)
	conv, ok := m.conversations[key]
	if !ok {
		conv = &conversation{messages: defaultTranscript()}
		m.conversations[key] = conv
	}
	if conv.inFlight {
		return false
	}
	conv.inFlight = true
	return true
}

// EndTurn kết thúc lượt gửi hiện tại
func (m *ConversationManager) EndTurn(userID uint, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conv, ok := m.conversations[conversationKey(userID, sessionID)]; ok {
		conv.inFlight = false
	}
}

// DeriveHistories tách lịch sử câu hỏi và câu trả lời dạng text từ transcript.
// Hai mảng này luôn suy ra được từ transcript, không có nguồn dữ liệu riêng.
func DeriveHistories(messages models.ChatMessageList) (questions []string, answers []string) {
	for _, msg := range messages {
		if msg.Type != constants.MessageTypeText {
			continue
		}
		switch msg.Sender {
		case constants.SenderUser:
			questions = append(questions, msg.Content)
		case constants.SenderBot:
			answers = append(answers, msg.Content)
		}
	}
	return questions, answers
}
