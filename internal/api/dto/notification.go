package dto

// NotificationDTO 通知响应对象
type NotificationDTO struct {
	ID          string         `json:"id"`
	SenderID    string         `json:"sender_id"`
	SenderName  string         `json:"sender_name"`
	Kind        string         `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Payload     map[string]any `json:"payload,omitempty"`
	Read        bool           `json:"read"`
	CreatedAt   string         `json:"created_at"`
}

// NotificationUnreadDTO 未读数返回
type NotificationUnreadDTO struct {
	UnreadCount int `json:"unread_count"`
}

// MarkNotificationReadReq 标记通知已读请求
type MarkNotificationReadReq struct {
	NotificationID string `json:"notification_id" binding:"required"`
}

// BroadcastReq 系统广播请求
type BroadcastReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type"` // info / standard / high / critical
}
