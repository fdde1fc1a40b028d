package dto

import "time"

// SendMessageReq 发送消息请求体
type SendMessageReq struct {
	ConversationID string   `json:"conversation_id" binding:"required"`
	Content        string   `json:"content" binding:"required"`
	Attachments    []string `json:"attachments"` // 媒体资源ID列表
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID             string             `json:"id"`
	ConversationID string             `json:"conversation_id"`
	SenderID       string             `json:"sender_id"`
	Content        string             `json:"content"`
	Timestamp      time.Time          `json:"timestamp"`
	Status         string             `json:"status"`
	IsStarred      bool               `json:"is_starred"`
	Attachments    []MediaResourceDTO `json:"attachments,omitempty"`
}

// ConversationDTO 会话列表项响应
type ConversationDTO struct {
	ID            string    `json:"id"`
	ContactID     string    `json:"contact_id"`
	ContactName   string    `json:"contact_name"`
	Presence      string    `json:"presence"`
	Subject       string    `json:"subject"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
	IsStarred     bool      `json:"is_starred"`
	IsImportant   bool      `json:"is_important"`
}

// CreateConversationReq 新建会话请求
type CreateConversationReq struct {
	ContactID   string `json:"contact_id" binding:"required"`
	ContactName string `json:"contact_name" binding:"required"`
	Role        string `json:"role"`
	Subject     string `json:"subject"`
}

// MarkAsReadReq 标记会话已读请求
type MarkAsReadReq struct {
	ConversationID string `json:"conversation_id" binding:"required"`
}

// ToggleReq 星标/重要标记请求
type ToggleReq struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	MessageID      string `json:"message_id"` // 为空时针对会话
}

// RetryMessageReq 重试失败消息请求
type RetryMessageReq struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	MessageID      string `json:"message_id" binding:"required"`
}
