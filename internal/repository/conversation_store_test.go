package repository

import (
	"Vanguard/internal/model"
	"errors"
	"testing"
	"time"
)

func newTestStore() ConversationStore {
	return NewConversationStore(SeedConversations())
}

func TestAppendMessageUpdatesConversation(t *testing.T) {
	store := newTestStore()

	msg := &model.Message{
		ID:             "m100",
		ConversationID: "c1",
		SenderID:       "self",
		Content:        "已收到，周三发你",
		Timestamp:      time.Now(),
		Status:         model.MessageStatusSending,
	}
	if err := store.AppendMessage("c1", msg); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}

	conv, err := store.Get("c1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if conv.LastMessage != "已收到，周三发你" {
		t.Errorf("LastMessage = %q, want appended content", conv.LastMessage)
	}
	if !conv.LastMessageAt.Equal(msg.Timestamp) {
		t.Errorf("LastMessageAt = %v, want %v", conv.LastMessageAt, msg.Timestamp)
	}
	// 本方发送不增加未读数
	if conv.UnreadCount != 1 {
		t.Errorf("UnreadCount = %d, want 1", conv.UnreadCount)
	}
}

func TestAppendContactMessageIncrementsUnread(t *testing.T) {
	store := newTestStore()

	msg := &model.Message{
		ID: "m101", ConversationID: "c1", SenderID: "u4",
		Content: "记得带上现金流预测", Timestamp: time.Now(),
		Status: model.MessageStatusDelivered,
	}
	if err := store.AppendMessage("c1", msg); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}

	conv, _ := store.Get("c1")
	if conv.UnreadCount != 2 {
		t.Errorf("UnreadCount = %d, want 2", conv.UnreadCount)
	}
}

func TestAdvanceMessageStatus(t *testing.T) {
	store := newTestStore()

	// m2 处于 delivered，推进到 read 合法
	if err := store.AdvanceMessageStatus("c1", "m2", model.MessageStatusRead); err != nil {
		t.Fatalf("AdvanceMessageStatus() error = %v", err)
	}

	// read 是终态，任何回退都应被拒绝
	err := store.AdvanceMessageStatus("c1", "m2", model.MessageStatusSent)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("AdvanceMessageStatus() error = %v, want ErrIllegalTransition", err)
	}

	if err := store.AdvanceMessageStatus("c1", "missing", model.MessageStatusRead); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("AdvanceMessageStatus() error = %v, want ErrMessageNotFound", err)
	}
	if err := store.AdvanceMessageStatus("missing", "m2", model.MessageStatusRead); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("AdvanceMessageStatus() error = %v, want ErrConversationNotFound", err)
	}
}

func TestMarkConversationRead(t *testing.T) {
	store := newTestStore()

	if err := store.MarkConversationRead("c1"); err != nil {
		t.Fatalf("MarkConversationRead() error = %v", err)
	}

	conv, _ := store.Get("c1")
	if conv.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", conv.UnreadCount)
	}
	msg, _ := store.GetMessage("c1", "m2")
	if msg.Status != model.MessageStatusRead {
		t.Errorf("contact message status = %q, want read", msg.Status)
	}
}

func TestDeleteConversation(t *testing.T) {
	store := newTestStore()

	if err := store.Delete("c2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get("c2"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrConversationNotFound", err)
	}
	if _, err := store.GetMessage("c2", "m3"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("GetMessage() after delete error = %v, want ErrConversationNotFound", err)
	}
	if err := store.Delete("c2"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("second Delete() error = %v, want ErrConversationNotFound", err)
	}
}

func TestListSortedByLastMessage(t *testing.T) {
	store := newTestStore()

	list := store.List("self")
	if len(list) != 2 {
		t.Fatalf("List() returned %d conversations, want 2", len(list))
	}
	if list[0].ID != "c1" {
		t.Errorf("List()[0].ID = %q, want c1 (most recent first)", list[0].ID)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := newTestStore()

	conv, _ := store.Get("c1")
	conv.Subject = "mutated"
	conv.Messages[0].Content = "mutated"

	fresh, _ := store.Get("c1")
	if fresh.Subject == "mutated" {
		t.Error("mutating Get() result leaked into store")
	}
	if fresh.Messages[0].Content == "mutated" {
		t.Error("mutating message in Get() result leaked into store")
	}
}

func TestToggleMessageStar(t *testing.T) {
	store := newTestStore()

	on, err := store.ToggleMessageStar("c1", "m1")
	if err != nil {
		t.Fatalf("ToggleMessageStar() error = %v", err)
	}
	if !on {
		t.Error("first toggle = false, want true")
	}
	on, _ = store.ToggleMessageStar("c1", "m1")
	if on {
		t.Error("second toggle = true, want false")
	}
}
