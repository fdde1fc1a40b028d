package llm

import (
	"Vanguard/internal/api/config"
	"context"
	log "log/slog"
	"sync"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/prompts"
)

// Mentor AI创业导师对话接口
type Mentor interface {
	// ChatSingle 单轮问答，流式返回
	ChatSingle(ctx context.Context, question string) (chan string, error)
	// Converse 多轮对话，按chatID保留会话记忆
	Converse(ctx context.Context, question string, chatID string) (chan string, error)
}

type mentorImpl struct {
	mu     sync.Mutex
	chains map[string]*chains.LLMChain
}

func NewMentor() Mentor {
	return &mentorImpl{chains: make(map[string]*chains.LLMChain)}
}

// ChatSingle 单轮对话
func (s *mentorImpl) ChatSingle(ctx context.Context, question string) (chan string, error) {
	if err := ChatSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(mentorPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(question),
			},
		},
	}

	out := make(chan string, 20)
	go func() {
		defer close(out)
		defer ChatSem.Release(1)

		_, err := llmClient.GenerateContent(ctx, messages,
			llms.WithModel(config.Cfg.LLM.Model),
			llms.WithTemperature(config.Cfg.LLM.Temperature),
			llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				out <- string(chunk)
				return nil
			}),
		)
		if err != nil {
			log.Error("AI导师请求失败", "err", err)
			out <- ClassifyError(err).Error()
		}
	}()

	return out, nil
}

// Converse 多轮对话，链式记忆按 chatID 复用
func (s *mentorImpl) Converse(ctx context.Context, question string, chatID string) (chan string, error) {
	if err := ChatSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	promptTemplate := prompts.NewChatPromptTemplate([]prompts.MessageFormatter{
		prompts.NewSystemMessagePromptTemplate(mentorPrompt, nil),
		prompts.NewHumanMessagePromptTemplate("{{.question}}", []string{"question"}),
	})

	s.mu.Lock()
	chain, ok := s.chains[chatID]
	if !ok {
		mem := memory.NewConversationBuffer()
		chain = chains.NewLLMChain(llmClient, promptTemplate)
		chain.Memory = mem
		s.chains[chatID] = chain
	}
	s.mu.Unlock()

	inputs := map[string]any{
		"question": question,
	}

	out := make(chan string, 20)
	go func() {
		defer close(out)
		defer ChatSem.Release(1)

		_, err := chains.Call(
			ctx,
			chain,
			inputs,
			chains.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				out <- string(chunk)
				return nil
			}),
		)
		if err != nil {
			log.Error("AI导师请求失败", "err", err)
			out <- ClassifyError(err).Error()
		}
	}()

	return out, nil
}
