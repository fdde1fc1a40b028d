package dto

// AgentConverseRequest 多轮对话请求
type AgentConverseRequest struct {
	ChatID   string `json:"chat_id"`
	Question string `json:"question"`
}
