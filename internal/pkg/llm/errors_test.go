package llm

import (
	"Vanguard/internal/service"
	"errors"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"invalid key", errors.New("API returned: invalid_api_key"), service.ErrLLMInvalidKey},
		{"http 401", errors.New("status code 401 Unauthorized"), service.ErrLLMInvalidKey},
		{"quota", errors.New("insufficient_quota: billing hard limit"), service.ErrLLMQuotaExceeded},
		{"http 429", errors.New("status code 429 Too Many Requests"), service.ErrLLMQuotaExceeded},
		{"anything else", errors.New("connection refused"), service.ErrLLMUnavailable},
	}

	for _, tt := range tests {
		if got := ClassifyError(tt.err); !errors.Is(got, tt.want) {
			t.Errorf("%s: ClassifyError() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
