package controllers

import (
	"strconv"

	"finsmart/constants"
	"finsmart/response"
	"finsmart/services"

	"github.com/gin-gonic/gin"
)

type ForecastController struct {
	forecast services.ForecastClient
}

func NewForecastController(forecast services.ForecastClient) *ForecastController {
	return &ForecastController{forecast: forecast}
}

// GetForecast lấy ảnh biểu đồ dự đoán trực tiếp, dùng khi replay
// các tin nhắn ảnh đã bị xóa payload trong transcript
func (ctl *ForecastController) GetForecast(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	chartType := c.Param("kind")
	if chartType != constants.ChartTypeTransactions && chartType != constants.ChartTypeFinancial {
		response.BadRequest(c, "Loại biểu đồ không hợp lệ")
		return
	}

	periods := constants.DefaultPeriods
	if raw := c.Query("periods"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(c, "periods không hợp lệ")
			return
		}
		periods = parsed
	}

	result, err := ctl.forecast.Predict(c.Request.Context(), chartType, userID, periods)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, result)
}
