package services

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestNewSessionIDFormat(t *testing.T) {
	id := NewSessionID()

	prefix := fmt.Sprintf("session-%s-", time.Now().Format("2006-01-02"))
	if !strings.HasPrefix(id, prefix) {
		t.Fatalf("session id %q thiếu prefix %q", id, prefix)
	}

	suffix := strings.TrimPrefix(id, prefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		t.Fatalf("hậu tố %q không phải số: %v", suffix, err)
	}
	if n < 0 || n >= 10000 {
		t.Fatalf("hậu tố %d ngoài khoảng [0, 10000)", n)
	}
}
