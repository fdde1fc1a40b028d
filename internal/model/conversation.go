package model

import "time"

// 消息投递状态机: sending → sent → delivered → read，严格单向
// failed 可由 sending/sent 进入，Retry 后重新回到 sending
const (
	MessageStatusSending   = "sending"
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
	MessageStatusFailed    = "failed"
)

var statusRank = map[string]int{
	MessageStatusSending:   0,
	MessageStatusSent:      1,
	MessageStatusDelivered: 2,
	MessageStatusRead:      3,
}

// CanAdvance 判断状态迁移是否合法（只进不退）
func CanAdvance(from, to string) bool {
	if to == MessageStatusFailed {
		return from == MessageStatusSending || from == MessageStatusSent
	}
	if from == MessageStatusFailed {
		return to == MessageStatusSending
	}
	fr, ok1 := statusRank[from]
	tr, ok2 := statusRank[to]
	return ok1 && ok2 && tr == fr+1
}

// Contact 会话对手方身份
type Contact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`     // mentor / participant / staff
	Presence string `json:"presence"` // online / away / offline
}

// Message 会话消息
type Message struct {
	ID             string          `json:"id"`
	ConversationID string          `json:"conversation_id"`
	SenderID       string          `json:"sender_id"`
	Content        string          `json:"content"`
	Timestamp      time.Time       `json:"timestamp"`
	Status         string          `json:"status"`
	IsStarred      bool            `json:"is_starred"`
	Attachments    []MediaResource `json:"attachments,omitempty"`
}

// Conversation 会话，独占其消息序列
// 不变式: UnreadCount 等于对手方未读消息数
type Conversation struct {
	ID            string     `json:"id"`
	Contact       Contact    `json:"contact"`
	Subject       string     `json:"subject"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt time.Time  `json:"last_message_at"`
	UnreadCount   int        `json:"unread_count"`
	IsStarred     bool       `json:"is_starred"`
	IsImportant   bool       `json:"is_important"`
	Messages      []*Message `json:"messages"`
	CreatedAt     time.Time  `json:"created_at"`
}
