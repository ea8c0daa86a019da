package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"finsmart/constants"
	"finsmart/dto"
	"finsmart/services/logger"
)

const intentPromptTemplate = `
Phân tích yêu cầu của người dùng và trả về JSON theo định dạng:
{
  "is_prediction_request": boolean,
  "chart_type": "transactions" | "financial" | null,
  "periods": number (mặc định 30 nếu không xác định được),
  "response_message": string (phản hồi tự nhiên)
}
Nếu yêu cầu là vẽ biểu đồ dự đoán tài chính thì chart_type là "financial", nếu là vẽ biểu đồ dự đoán chi tiêu thì chart_type là "transactions", nếu không phải cả hai thì là null
Yêu cầu: "%s"
`

// IntentClassifier phân loại ý định một câu hỏi của người dùng
type IntentClassifier struct {
	llm    LLMClient
	logger logger.Logger
}

func NewIntentClassifier(llm LLMClient, log logger.Logger) *IntentClassifier {
	return &IntentClassifier{llm: llm, logger: log}
}

func defaultDecision() dto.IntentDecision {
	return dto.IntentDecision{
		IsPredictionRequest: false,
		ResponseMessage:     "Xin lỗi, tôi không hiểu yêu cầu của bạn",
	}
}

// stripCodeFences bỏ markup ```json ... ``` mà model hay bọc quanh kết quả
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Classify gọi model và parse kết quả thành quyết định có kiểu rõ ràng.
// Mọi lỗi gọi model hoặc parse đều trả về quyết định mặc định, không bao giờ trả lỗi.
func (ic *IntentClassifier) Classify(ctx context.Context, userMessage string) dto.IntentDecision {
	prompt := fmt.Sprintf(intentPromptTemplate, userMessage)

	raw, err := ic.llm.Generate(ctx, prompt)
	if err != nil {
		ic.logger.Error("Lỗi phân tích ý định: %v", err)
		return defaultDecision()
	}

	decision, err := parseIntentDecision(raw)
	if err != nil {
		ic.logger.Error("Lỗi parse kết quả phân tích ý định: %v", err)
		return defaultDecision()
	}

	return decision
}

// parseIntentDecision validate kết quả model theo schema thay vì tin tưởng hình dạng trả về
func parseIntentDecision(raw string) (dto.IntentDecision, error) {
	cleaned := stripCodeFences(raw)

	var parsed struct {
		IsPredictionRequest *bool   `json:"is_prediction_request"`
		ChartType           *string `json:"chart_type"`
		Periods             *int    `json:"periods"`
		ResponseMessage     string  `json:"response_message"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return dto.IntentDecision{}, fmt.Errorf("kết quả không phải JSON hợp lệ: %w", err)
	}
	if parsed.IsPredictionRequest == nil {
		return dto.IntentDecision{}, fmt.Errorf("thiếu trường is_prediction_request")
	}

	decision := dto.IntentDecision{
		IsPredictionRequest: *parsed.IsPredictionRequest,
		Periods:             constants.DefaultPeriods,
		ResponseMessage:     parsed.ResponseMessage,
	}

	if parsed.Periods != nil && *parsed.Periods > 0 {
		decision.Periods = *parsed.Periods
	}

	if parsed.ChartType != nil {
		chartType := strings.TrimSpace(strings.ToLower(*parsed.ChartType))
		switch chartType {
		case constants.ChartTypeTransactions, constants.ChartTypeFinancial:
			decision.ChartType = chartType
		default:
			// loại biểu đồ không nhận diện được giữ nguyên là rỗng,
			// orchestrator sẽ bỏ qua lượt trả lời
		}
	}

	return decision, nil
}
