package handler

import (
	"Vanguard/internal/api/dto"
	"Vanguard/internal/pkg/llm"
	"Vanguard/internal/pkg/response"
	"Vanguard/internal/service"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AgentResponse struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type AgentHandler struct {
	mentor llm.Mentor
}

func NewAgentHandler(mentor llm.Mentor) *AgentHandler {
	return &AgentHandler{mentor: mentor}
}

// Ask 单轮导师问答，SSE 流式回包
func (s *AgentHandler) Ask(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	channel, err := s.mentor.ChatSingle(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Transfer-Encoding", "chunked")

	c.Stream(func(w io.Writer) bool {
		if msg, ok := <-channel; ok {
			c.SSEvent("", AgentResponse{
				Type:    "message",
				Content: msg,
			})
			return true
		}
		return false
	})
}

// Converse 多轮对话，chat_id 为空时开新会话并先行下发
func (s *AgentHandler) Converse(c *gin.Context) {
	var convDTO dto.AgentConverseRequest

	if err := c.ShouldBindJSON(&convDTO); err != nil {
		response.Fail(c, response.BadRequest, "参数格式错误")
		return
	}

	if convDTO.Question == "" {
		response.Fail(c, response.BadRequest, "问题不能为空")
		return
	}

	isNewChat := false
	if convDTO.ChatID == "" || convDTO.ChatID == "0" {
		convDTO.ChatID = uuid.NewString()
		isNewChat = true
	}

	outChan, err := s.mentor.Converse(c.Request.Context(), convDTO.Question, convDTO.ChatID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		if isNewChat {
			c.SSEvent("", AgentResponse{
				Type:    "chat_id",
				Content: convDTO.ChatID,
			})
			isNewChat = false
			return true
		}

		if msg, ok := <-outChan; ok {
			c.SSEvent("", AgentResponse{
				Type:    "message",
				Content: msg,
			})
			return true
		}

		c.SSEvent("", AgentResponse{
			Type:    "done",
			Content: "EOF",
		})
		return false
	})
}
