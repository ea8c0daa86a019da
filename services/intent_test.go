package services

import (
	"context"
	"errors"
	"testing"

	"finsmart/constants"
	"finsmart/services/logger"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestClassifier(llm LLMClient) *IntentClassifier {
	return NewIntentClassifier(llm, logger.NewDefaultLogger(logger.ErrorLevel))
}

func TestClassifyPredictionRequest(t *testing.T) {
	llm := &fakeLLM{response: `{
		"is_prediction_request": true,
		"chart_type": "financial",
		"periods": 60,
		"response_message": "Đây là biểu đồ dự đoán tài chính của bạn"
	}`}

	decision := newTestClassifier(llm).Classify(context.Background(), "Vẽ biểu đồ dự đoán tài chính sau 2 tháng")

	if !decision.IsPredictionRequest {
		t.Fatalf("phải nhận diện là yêu cầu dự đoán")
	}
	if decision.ChartType != constants.ChartTypeFinancial {
		t.Fatalf("chart_type sai: %q", decision.ChartType)
	}
	if decision.Periods != 60 {
		t.Fatalf("periods sai: %d", decision.Periods)
	}
}

func TestClassifyStripsCodeFences(t *testing.T) {
	llm := &fakeLLM{response: "```json\n{\"is_prediction_request\": true, \"chart_type\": \"transactions\"}\n```"}

	decision := newTestClassifier(llm).Classify(context.Background(), "vẽ biểu đồ chi tiêu")

	if !decision.IsPredictionRequest {
		t.Fatalf("phải parse được JSON bọc trong code fence")
	}
	if decision.ChartType != constants.ChartTypeTransactions {
		t.Fatalf("chart_type sai: %q", decision.ChartType)
	}
}

func TestClassifyDefaultPeriods(t *testing.T) {
	llm := &fakeLLM{response: `{"is_prediction_request": true, "chart_type": "financial"}`}

	decision := newTestClassifier(llm).Classify(context.Background(), "vẽ biểu đồ")

	if decision.Periods != constants.DefaultPeriods {
		t.Fatalf("periods phải mặc định %d, got %d", constants.DefaultPeriods, decision.Periods)
	}
}

func TestClassifyUnknownChartType(t *testing.T) {
	llm := &fakeLLM{response: `{"is_prediction_request": true, "chart_type": "pie"}`}

	decision := newTestClassifier(llm).Classify(context.Background(), "vẽ biểu đồ tròn")

	// Loại không nhận diện được vẫn là yêu cầu dự đoán nhưng chart_type rỗng
	if !decision.IsPredictionRequest {
		t.Fatalf("cờ dự đoán phải được giữ nguyên")
	}
	if decision.ChartType != "" {
		t.Fatalf("chart_type phải rỗng, got %q", decision.ChartType)
	}
}

func TestClassifyMalformedOutput(t *testing.T) {
	cases := []string{
		"xin lỗi, tôi không thể trả về JSON",
		`{"chart_type": "financial"}`,
		"{broken json",
		"",
	}

	for _, raw := range cases {
		decision := newTestClassifier(&fakeLLM{response: raw}).Classify(context.Background(), "câu hỏi")
		if decision.IsPredictionRequest {
			t.Fatalf("kết quả %q phải ra quyết định mặc định", raw)
		}
		if decision.ResponseMessage == "" {
			t.Fatalf("quyết định mặc định phải có response_message")
		}
	}
}

func TestClassifyModelError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("connection refused")}

	decision := newTestClassifier(llm).Classify(context.Background(), "câu hỏi")

	if decision.IsPredictionRequest {
		t.Fatalf("lỗi gọi model phải ra quyết định mặc định")
	}
}

func TestClassifyNullChartType(t *testing.T) {
	llm := &fakeLLM{response: `{"is_prediction_request": false, "chart_type": null, "response_message": "Chào bạn"}`}

	decision := newTestClassifier(llm).Classify(context.Background(), "xin chào")

	if decision.IsPredictionRequest {
		t.Fatalf("không phải yêu cầu dự đoán")
	}
	if decision.ChartType != "" {
		t.Fatalf("chart_type phải rỗng")
	}
	if decision.ResponseMessage != "Chào bạn" {
		t.Fatalf("response_message sai: %q", decision.ResponseMessage)
	}
}
