package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"finsmart/constants"
	"finsmart/dto"
	"finsmart/errors"
)

// ForecastClient gọi dịch vụ dự đoán để lấy ảnh biểu đồ
type ForecastClient interface {
	Predict(ctx context.Context, chartType string, userID uint, periods int) (*dto.ForecastResult, error)
}

// HTTPForecastClient client HTTP cho dịch vụ dự đoán.
// Mỗi lần render chỉ gọi đúng một lần, không retry.
type HTTPForecastClient struct {
	baseURL string
	client  *http.Client
}

func NewForecastClient() *HTTPForecastClient {
	baseURL := os.Getenv("FORECAST_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &HTTPForecastClient{
		baseURL: baseURL,
		client:  http.DefaultClient,
	}
}

type forecastResponse struct {
	Plot    string `json:"plot"`
	Message string `json:"message"`
}

// Predict gọi GET /predict/{chartType}?user_id=&periods=&full_data=false.
// Phản hồi non-2xx được chuyển thành thông điệp lỗi hiển thị cho người dùng;
// lỗi kết nối trả về error để orchestrator xử lý.
func (f *HTTPForecastClient) Predict(ctx context.Context, chartType string, userID uint, periods int) (*dto.ForecastResult, error) {
	apiURL := fmt.Sprintf("%s/predict/%s?user_id=%d&periods=%d&full_data=false",
		f.baseURL, chartType, userID, periods)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeForecast, "Không tạo được request dự đoán", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeForecast, "Không gọi được dịch vụ dự đoán", err)
	}
	defer resp.Body.Close()

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeForecast, "Không đọc được phản hồi dự đoán", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := body.Message
		if message == "" {
			message = "Lỗi không xác định từ server"
		}
		return &dto.ForecastResult{
			ErrorMessage: message + "\n" + constants.RetryLaterHint,
		}, nil
	}

	return &dto.ForecastResult{
		ImageData: "data:image/png;base64," + body.Plot,
	}, nil
}
