package llm

import (
	"Vanguard/internal/service"
	"strings"
)

// ClassifyError 把底层聊天接口错误归类为面向用户的三类错误
// invalid_key → 提示重新配置凭据；quota_exceeded → 提示检查账单；其余 → 稍后重试
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid_api_key"),
		strings.Contains(msg, "incorrect api key"),
		strings.Contains(msg, "401"):
		return service.ErrLLMInvalidKey
	case strings.Contains(msg, "insufficient_quota"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "429"):
		return service.ErrLLMQuotaExceeded
	default:
		return service.ErrLLMUnavailable
	}
}
