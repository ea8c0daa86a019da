package services

import (
	"testing"

	"finsmart/constants"
	"finsmart/models"
)

func TestConversationResetYieldsGreeting(t *testing.T) {
	m := NewConversationManager()
	m.Reset(1, "session-a")

	messages, ok := m.Get(1, "session-a")
	if !ok {
		t.Fatalf("conversation phải tồn tại sau Reset")
	}
	if len(messages) != 1 {
		t.Fatalf("transcript mới phải có đúng 1 tin nhắn, got %d", len(messages))
	}
	if messages[0].Sender != constants.SenderBot || messages[0].Content != constants.DefaultGreeting {
		t.Fatalf("tin nhắn đầu phải là lời chào mặc định: %+v", messages[0])
	}
}

func TestConversationReplaceEmptyFallsBackToGreeting(t *testing.T) {
	m := NewConversationManager()
	m.Replace(1, "session-a", nil)

	messages, _ := m.Get(1, "session-a")
	if len(messages) != 1 || messages[0].Content != constants.DefaultGreeting {
		t.Fatalf("transcript rỗng phải thay bằng lời chào mặc định: %+v", messages)
	}
}

func TestConversationAppendOrder(t *testing.T) {
	m := NewConversationManager()
	m.Reset(1, "s")

	m.Append(1, "s", models.ChatMessage{Sender: constants.SenderUser, Type: constants.MessageTypeText, Content: "câu hỏi"})
	n := m.Append(1, "s", models.ChatMessage{Sender: constants.SenderBot, Type: constants.MessageTypeText, Content: "câu trả lời"})

	if n != 3 {
		t.Fatalf("độ dài sau 2 lần append phải là 3, got %d", n)
	}

	messages, _ := m.Get(1, "s")
	if messages[1].Sender != constants.SenderUser || messages[2].Sender != constants.SenderBot {
		t.Fatalf("thứ tự append bị sai: %+v", messages)
	}
}

func TestConversationGetReturnsCopy(t *testing.T) {
	m := NewConversationManager()
	m.Reset(1, "s")

	messages, _ := m.Get(1, "s")
	messages[0].Content = "đã sửa"

	fresh, _ := m.Get(1, "s")
	if fresh[0].Content != constants.DefaultGreeting {
		t.Fatalf("sửa bản sao không được ảnh hưởng trạng thái trong manager")
	}
}

func TestConversationsIsolatedPerUserAndSession(t *testing.T) {
	m := NewConversationManager()
	m.Reset(1, "s")
	m.Reset(2, "s")

	m.Append(1, "s", models.ChatMessage{Sender: constants.SenderUser, Type: constants.MessageTypeText, Content: "của user 1"})

	messages2, _ := m.Get(2, "s")
	if len(messages2) != 1 {
		t.Fatalf("transcript của user khác không được thay đổi")
	}
}

func TestBeginTurnRejectsOverlap(t *testing.T) {
	m := NewConversationManager()
	m.Reset(1, "s")

	if !m.BeginTurn(1, "s") {
		t.Fatalf("lượt đầu phải được chấp nhận")
	}
	if m.BeginTurn(1, "s") {
		t.Fatalf("lượt chồng lấn phải bị từ chối")
	}

	m.EndTurn(1, "s")
	if !m.BeginTurn(1, "s") {
		t.Fatalf("sau EndTurn phải nhận lượt mới")
	}
}

func TestDeriveHistories(t *testing.T) {
	transcript := models.ChatMessageList{
		{Sender: constants.SenderBot, Type: constants.MessageTypeText, Content: constants.DefaultGreeting},
		{Sender: constants.SenderUser, Type: constants.MessageTypeText, Content: "chi tiêu tháng này?"},
		{Sender: constants.SenderBot, Type: constants.MessageTypeText, Content: "Bạn đã chi 2 triệu"},
		{Sender: constants.SenderUser, Type: constants.MessageTypeText, Content: "vẽ biểu đồ dự đoán"},
		{Sender: constants.SenderBot, Type: constants.MessageTypeImage, Content: "data:image/png;base64,AAAA"},
	}

	questions, answers := DeriveHistories(transcript)

	if len(questions) != 2 {
		t.Fatalf("số câu hỏi sai: %d", len(questions))
	}
	if len(answers) != 2 {
		t.Fatalf("số câu trả lời text sai: %d", len(answers))
	}
	if questions[0] != "chi tiêu tháng này?" || questions[1] != "vẽ biểu đồ dự đoán" {
		t.Fatalf("câu hỏi sai: %+v", questions)
	}
	// Tin nhắn ảnh không được tính vào lịch sử trả lời
	for _, a := range answers {
		if a == "data:image/png;base64,AAAA" {
			t.Fatalf("lịch sử trả lời chứa payload ảnh")
		}
	}
}
