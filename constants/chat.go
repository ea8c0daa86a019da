package constants

// Sender của tin nhắn
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Loại nội dung tin nhắn
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// Loại biểu đồ dự đoán
const (
	ChartTypeTransactions = "transactions"
	ChartTypeFinancial    = "financial"
)

// DefaultPeriods số kỳ dự đoán mặc định khi người dùng không nói rõ
const DefaultPeriods = 30

// DefaultGreeting tin nhắn chào mặc định khi mở đoạn chat mới
const DefaultGreeting = "Xin chào! Tôi có thể giúp gì cho bạn?"

// RetryLaterHint gợi ý hiển thị kèm lỗi dự đoán
const RetryLaterHint = "Vui lòng thử lại sau"

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)
