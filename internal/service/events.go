package service

import (
	"Vanguard/internal/model"

	"github.com/goccy/go-json"
)

// IMEvent 实时通道上推送的会话事件
type IMEvent struct {
	Type           string         `json:"type"` // message / status / read
	ConversationID string         `json:"conversation_id"`
	MessageID      string         `json:"message_id,omitempty"`
	Status         string         `json:"status,omitempty"`
	Message        *model.Message `json:"message,omitempty"`
}

func marshalEvent(v any) ([]byte, error) {
	return json.Marshal(v)
}
