package model

import "time"

// 通知级别
const (
	NotificationTypeInfo     = "info"
	NotificationTypeStandard = "standard"
	NotificationTypeHigh     = "high"
	NotificationTypeCritical = "critical"
)

// 通知种类
const (
	NotificationKindMention  = "mention"
	NotificationKindDelivery = "delivery"
	NotificationKindSystem   = "system"
)

// Notification 站内通知，仅通过已读确认发生变更
type Notification struct {
	ID          string         `json:"id"`
	ReceiverID  string         `json:"receiver_id"`
	SenderID    string         `json:"sender_id"` // 空代表系统发送
	Kind        string         `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        string         `json:"type"` // info / standard / high / critical
	Payload     map[string]any `json:"payload,omitempty"`
	Read        bool           `json:"read"`
	CreatedAt   time.Time      `json:"created_at"`
}
