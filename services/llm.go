package services

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

// LLMClient trừu tượng hóa lời gọi model sinh văn bản.
// Cho phép inject client giả trong test thay vì dùng biến toàn cục.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient gọi Gemini qua endpoint tương thích OpenAI
type GeminiClient struct {
	client *openai.Client
	model  string
}

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

func NewGeminiClient() *GeminiClient {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	baseURL := os.Getenv("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &GeminiClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model không trả về kết quả")
	}
	return resp.Choices[0].Message.Content, nil
}
