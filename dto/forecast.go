package dto

// ForecastResult kết quả đã render từ dịch vụ dự đoán
type ForecastResult struct {
	// ImageData data URI của ảnh biểu đồ, rỗng nếu có lỗi
	ImageData string `json:"image_data,omitempty"`
	// ErrorMessage thông điệp lỗi hiển thị cho người dùng, kèm gợi ý thử lại
	ErrorMessage string `json:"error_message,omitempty"`
}
