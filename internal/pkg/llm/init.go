package llm

import (
	"Vanguard/internal/api/config"
	log "log/slog"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var llmClient llms.Model

var mentorPrompt string

// InitLLM 初始化AI导师模型客户端
func InitLLM() error {
	cfg := config.Cfg.LLM

	llm, err := openai.New(
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)

	if err != nil {
		log.Error("AI导师模型初始化失败", "err", err)
		return err
	}

	llmClient = llm

	mentorPrompt = readPrompt(cfg.PromptPath)

	return nil
}

func readPrompt(file string) string {
	if file == "" {
		return ""
	}
	data, err := os.ReadFile(file)
	if err != nil {
		log.Error("读取prompt文件失败", "err", err)
		return ""
	}
	return string(data)
}
