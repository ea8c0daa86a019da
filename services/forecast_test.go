package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finsmart/constants"
)

func newTestForecastClient(baseURL string) *HTTPForecastClient {
	return &HTTPForecastClient{baseURL: baseURL, client: http.DefaultClient}
}

func TestPredictSuccess(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"plot": "AAAA"}`))
	}))
	defer server.Close()

	result, err := newTestForecastClient(server.URL).Predict(context.Background(), constants.ChartTypeFinancial, 7, 30)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if gotPath != "/predict/financial" {
		t.Fatalf("path sai: %q", gotPath)
	}
	for _, param := range []string{"user_id=7", "periods=30", "full_data=false"} {
		if !strings.Contains(gotQuery, param) {
			t.Fatalf("query %q thiếu %q", gotQuery, param)
		}
	}

	if result.ImageData != "data:image/png;base64,AAAA" {
		t.Fatalf("image data sai: %q", result.ImageData)
	}
	if result.ErrorMessage != "" {
		t.Fatalf("không được có thông điệp lỗi, got %q", result.ErrorMessage)
	}
}

func TestPredictServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "no data"}`))
	}))
	defer server.Close()

	result, err := newTestForecastClient(server.URL).Predict(context.Background(), constants.ChartTypeTransactions, 7, 30)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if result.ImageData != "" {
		t.Fatalf("không được có ảnh khi server lỗi")
	}
	if !strings.Contains(result.ErrorMessage, "no data") {
		t.Fatalf("thông điệp lỗi phải chứa message của server: %q", result.ErrorMessage)
	}
	if !strings.Contains(result.ErrorMessage, constants.RetryLaterHint) {
		t.Fatalf("thông điệp lỗi phải kèm gợi ý thử lại: %q", result.ErrorMessage)
	}
}

func TestPredictServerErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	result, err := newTestForecastClient(server.URL).Predict(context.Background(), constants.ChartTypeFinancial, 1, 30)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if !strings.Contains(result.ErrorMessage, "Lỗi không xác định từ server") {
		t.Fatalf("thiếu thông điệp lỗi mặc định: %q", result.ErrorMessage)
	}
}

func TestPredictConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestForecastClient(server.URL).Predict(context.Background(), constants.ChartTypeFinancial, 1, 30)
	if err == nil {
		t.Fatalf("lỗi kết nối phải trả về error")
	}
}
