package repository

import (
	"Vanguard/internal/model"
	"time"
)

// SeedRoster 训练营花名册种子数据
func SeedRoster() []*model.RosterMember {
	return []*model.RosterMember{
		{ID: "u1", FirstName: "John", LastName: "Mercer", Cohort: "2026-spring", Role: "participant"},
		{ID: "u2", FirstName: "Maria", LastName: "Delgado", Cohort: "2026-spring", Role: "participant"},
		{ID: "u3", FirstName: "Marcus", LastName: "Webb", Cohort: "2026-spring", Role: "participant"},
		{ID: "u4", FirstName: "Sarah", LastName: "Kim", Cohort: "2026-spring", Role: "mentor"},
		{ID: "u5", FirstName: "David", LastName: "Okafor", Cohort: "2025-fall", Role: "participant"},
		{ID: "u6", FirstName: "Alex", LastName: "Reyes", Cohort: "2025-fall", Role: "staff"},
	}
}

// SeedConversations 初始会话种子数据
func SeedConversations() []*model.Conversation {
	base := time.Now().Add(-48 * time.Hour)
	return []*model.Conversation{
		{
			ID: "c1",
			Contact: model.Contact{
				ID: "u4", Name: "Sarah Kim", Role: "mentor", Presence: "online",
			},
			Subject:       "商业计划书第一轮反馈",
			LastMessage:   "周四前把修改稿发给我",
			LastMessageAt: base.Add(36 * time.Hour),
			UnreadCount:   1,
			CreatedAt:     base,
			Messages: []*model.Message{
				{
					ID: "m1", ConversationID: "c1", SenderID: "self",
					Content: "财务模型部分已经按建议重写了", Timestamp: base.Add(35 * time.Hour),
					Status: model.MessageStatusRead,
				},
				{
					ID: "m2", ConversationID: "c1", SenderID: "u4",
					Content: "周四前把修改稿发给我", Timestamp: base.Add(36 * time.Hour),
					Status: model.MessageStatusDelivered,
				},
			},
		},
		{
			ID: "c2",
			Contact: model.Contact{
				ID: "u6", Name: "Alex Reyes", Role: "staff", Presence: "away",
			},
			Subject:       "结业路演安排",
			LastMessage:   "场地确认了，3月12日上午",
			LastMessageAt: base.Add(20 * time.Hour),
			UnreadCount:   0,
			IsImportant:   true,
			CreatedAt:     base,
			Messages: []*model.Message{
				{
					ID: "m3", ConversationID: "c2", SenderID: "u6",
					Content: "场地确认了，3月12日上午", Timestamp: base.Add(20 * time.Hour),
					Status: model.MessageStatusRead,
				},
			},
		},
	}
}
