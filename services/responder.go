package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const answerPromptTemplate = `
Dữ liệu chi tiêu: %s
Dữ liệu thu nhập: %s
Lịch sử câu hỏi trước đó %s
Lịch sử câu trả lời trước đó %s

Câu hỏi: "%s"
→ Hãy tổng hợp và trả lời bằng tiếng Việt.
`

var markdownStars = regexp.MustCompile(`\*+`)

// Responder trả lời các câu hỏi tài chính thông thường,
// kèm dữ liệu chi tiêu/thu nhập của người dùng và lịch sử hỏi đáp làm ngữ cảnh.
type Responder struct {
	llm LLMClient
}

func NewResponder(llm LLMClient) *Responder {
	return &Responder{llm: llm}
}

// Answer gọi model một lần, không retry. Lỗi trả thẳng cho orchestrator xử lý.
func (r *Responder) Answer(ctx context.Context, question string, questionHistory, answerHistory []string, transactions, income string) (string, error) {
	prompt := fmt.Sprintf(answerPromptTemplate,
		transactions,
		income,
		strings.Join(questionHistory, ","),
		strings.Join(answerHistory, ","),
		question,
	)

	raw, err := r.llm.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	// Bỏ dấu * trang trí kiểu markdown trong câu trả lời
	return strings.TrimSpace(markdownStars.ReplaceAllString(raw, "\n")), nil
}
