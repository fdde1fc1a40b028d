package service

import (
	"Vanguard/internal/api/config"
	"Vanguard/internal/api/dto"
	"Vanguard/internal/model"
	"Vanguard/internal/pkg/channel"
	"Vanguard/internal/pkg/consts"
	"Vanguard/internal/repository"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func fastMessagingConfig() config.MessagingConfig {
	return config.MessagingConfig{SentDelayMs: 10, DeliveredDelayMs: 10, ReadDelayMs: 10}
}

type imFixture struct {
	store    repository.ConversationStore
	ch       *channel.MemoryChannel
	notifier *recordingNotifier
	svc      IMService
}

func newIMFixture(t *testing.T, fault DeliveryFault) *imFixture {
	t.Helper()

	store := repository.NewConversationStore(repository.SeedConversations())
	ch := channel.NewMemoryChannel()
	roster := repository.NewRosterRepo(repository.SeedRoster())
	notifier := &recordingNotifier{}
	mentions := NewMentionService(roster, notifier, config.MentionConfig{})
	svc := NewIMService(store, ch, mentions, &stubResolver{}, roster, fastMessagingConfig(), fault)
	t.Cleanup(svc.Close)

	return &imFixture{store: store, ch: ch, notifier: notifier, svc: svc}
}

// waitForStatus 轮询消息直到到达期望状态
func waitForStatus(t *testing.T, store repository.ConversationStore, convID, msgID, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		msg, err := store.GetMessage(convID, msgID)
		if err == nil && msg.Status == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	msg, _ := store.GetMessage(convID, msgID)
	t.Fatalf("message %s never reached status %q, last seen %+v", msgID, want, msg)
}

func TestSendMessageOptimistic(t *testing.T) {
	f := newIMFixture(t, nil)

	msg, err := f.svc.SendMessage(context.Background(), "u1", &dto.SendMessageReq{
		ConversationID: "c1",
		Content:        "修改稿已经发出",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if msg.Status != model.MessageStatusSending {
		t.Errorf("initial status = %q, want sending", msg.Status)
	}

	// 会话最后一条消息立即刷新
	conv, _ := f.store.Get("c1")
	if conv.LastMessage != "修改稿已经发出" {
		t.Errorf("LastMessage = %q, want optimistic update", conv.LastMessage)
	}
}

func TestSendMessageStatusProgression(t *testing.T) {
	f := newIMFixture(t, nil)

	msg, err := f.svc.SendMessage(context.Background(), "u1", &dto.SendMessageReq{
		ConversationID: "c1",
		Content:        "进度同步",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	waitForStatus(t, f.store, "c1", msg.ID, model.MessageStatusRead)
}

func TestSendMessagePublishesOrderedEvents(t *testing.T) {
	f := newIMFixture(t, nil)

	events, cancel, err := f.ch.Subscribe(context.Background(), consts.IMConversationKey+"c1")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer cancel()

	msg, err := f.svc.SendMessage(context.Background(), "u1", &dto.SendMessageReq{
		ConversationID: "c1",
		Content:        "事件顺序检查",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	want := []string{
		model.MessageStatusSending,
		model.MessageStatusSent,
		model.MessageStatusDelivered,
		model.MessageStatusRead,
	}
	for i, wantStatus := range want {
		select {
		case ev := <-events:
			var got IMEvent
			if err := json.Unmarshal(ev.Payload, &got); err != nil {
				t.Fatalf("event %d unmarshal error = %v", i, err)
			}
			if got.MessageID != msg.ID {
				t.Fatalf("event %d MessageID = %q, want %q", i, got.MessageID, msg.ID)
			}
			if got.Status != wantStatus {
				t.Fatalf("event %d status = %q, want %q", i, got.Status, wantStatus)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("event %d (%s) never observed", i, wantStatus)
		}
	}
}

func TestSendMessageValidation(t *testing.T) {
	f := newIMFixture(t, nil)
	ctx := context.Background()

	if _, err := f.svc.SendMessage(ctx, "u1", &dto.SendMessageReq{ConversationID: "c1"}); !errors.Is(err, ErrParamInvalid) {
		t.Errorf("empty content error = %v, want ErrParamInvalid", err)
	}
	if _, err := f.svc.SendMessage(ctx, "u1", &dto.SendMessageReq{ConversationID: "missing", Content: "x"}); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("missing conversation error = %v, want ErrConversationNotFound", err)
	}
}

func TestSendMessageMentionSideEffect(t *testing.T) {
	f := newIMFixture(t, nil)

	_, err := f.svc.SendMessage(context.Background(), "u1", &dto.SendMessageReq{
		ConversationID: "c1",
		Content:        "和 @Sarah 确认一下时间",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if f.notifier.count() != 1 {
		t.Fatalf("mention notifications = %d, want 1", f.notifier.count())
	}
	if f.notifier.sent[0].ReceiverID != "u4" {
		t.Errorf("ReceiverID = %q, want u4", f.notifier.sent[0].ReceiverID)
	}
}

func TestDeliveryFaultAndRetry(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	fault := func(messageID, stage string) error {
		if failing.Load() && stage == model.MessageStatusSent {
			return errors.New("simulated channel outage")
		}
		return nil
	}

	f := newIMFixture(t, fault)
	ctx := context.Background()

	msg, err := f.svc.SendMessage(ctx, "u1", &dto.SendMessageReq{
		ConversationID: "c1",
		Content:        "这条会失败",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	waitForStatus(t, f.store, "c1", msg.ID, model.MessageStatusFailed)

	// 故障恢复后重试，链路应当走完
	failing.Store(false)
	if err := f.svc.RetryMessage(ctx, "c1", msg.ID); err != nil {
		t.Fatalf("RetryMessage() error = %v", err)
	}
	waitForStatus(t, f.store, "c1", msg.ID, model.MessageStatusRead)
}

func TestRetryNotAllowedForHealthyMessage(t *testing.T) {
	f := newIMFixture(t, nil)
	ctx := context.Background()

	msg, err := f.svc.SendMessage(ctx, "u1", &dto.SendMessageReq{
		ConversationID: "c1",
		Content:        "正常投递",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	waitForStatus(t, f.store, "c1", msg.ID, model.MessageStatusRead)

	if err := f.svc.RetryMessage(ctx, "c1", msg.ID); !errors.Is(err, ErrRetryNotAllowed) {
		t.Errorf("RetryMessage() on read message error = %v, want ErrRetryNotAllowed", err)
	}
	if err := f.svc.RetryMessage(ctx, "c1", "missing"); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("RetryMessage() on missing message error = %v, want ErrMessageNotFound", err)
	}
}

func TestMarkAsReadClearsUnread(t *testing.T) {
	f := newIMFixture(t, nil)

	if err := f.svc.MarkAsRead(context.Background(), "c1"); err != nil {
		t.Fatalf("MarkAsRead() error = %v", err)
	}
	conv, _ := f.store.Get("c1")
	if conv.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", conv.UnreadCount)
	}
}

func TestCreateAndDeleteConversation(t *testing.T) {
	f := newIMFixture(t, nil)
	ctx := context.Background()

	id, err := f.svc.CreateConversation(ctx, model.Contact{ID: "u5", Name: "David Okafor", Role: "participant"}, "互助小组")
	if err != nil {
		t.Fatalf("CreateConversation() error = %v", err)
	}
	if id == "" {
		t.Fatal("CreateConversation() returned empty id")
	}

	if _, err := f.svc.CreateConversation(ctx, model.Contact{Name: "缺ID"}, ""); !errors.Is(err, ErrContactInvalid) {
		t.Errorf("CreateConversation() without contact id error = %v, want ErrContactInvalid", err)
	}

	if err := f.svc.DeleteConversation(ctx, id); err != nil {
		t.Fatalf("DeleteConversation() error = %v", err)
	}
	if err := f.svc.DeleteConversation(ctx, id); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("second DeleteConversation() error = %v, want ErrConversationNotFound", err)
	}
}

func TestConcurrentDeliveriesInterleave(t *testing.T) {
	f := newIMFixture(t, nil)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		msg, err := f.svc.SendMessage(ctx, "u1", &dto.SendMessageReq{
			ConversationID: "c1",
			Content:        "并发消息",
		})
		if err != nil {
			t.Fatalf("SendMessage() error = %v", err)
		}
		ids = append(ids, msg.ID)
	}

	for _, id := range ids {
		waitForStatus(t, f.store, "c1", id, model.MessageStatusRead)
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	store := repository.NewConversationStore(repository.SeedConversations())
	ch := channel.NewMemoryChannel()
	roster := repository.NewRosterRepo(repository.SeedRoster())
	mentions := NewMentionService(roster, &recordingNotifier{}, config.MentionConfig{})
	svc := NewIMService(store, ch, mentions, &stubResolver{}, roster,
		config.MessagingConfig{SentDelayMs: 500, DeliveredDelayMs: 500, ReadDelayMs: 500}, nil)

	msg, err := svc.SendMessage(context.Background(), "u1", &dto.SendMessageReq{
		ConversationID: "c1",
		Content:        "关闭前发送",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	svc.Close()

	got, _ := store.GetMessage("c1", msg.ID)
	if got.Status == model.MessageStatusRead {
		t.Error("delivery chain completed despite Close(), want early cancellation")
	}
}
