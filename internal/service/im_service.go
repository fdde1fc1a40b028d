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
	log "log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DeliveryFault 投递失败注入点，返回非 nil 使该阶段投递失败
// 生产环境为 nil（模拟通道总是成功），测试用它驱动 failed 状态
type DeliveryFault func(messageID, stage string) error

// IMService 即时通讯服务接口定义
type IMService interface {
	SendMessage(ctx context.Context, senderID string, req *dto.SendMessageReq) (*model.Message, error)
	GetConversationList(ctx context.Context, userID string) []*model.Conversation
	GetHistory(ctx context.Context, convID string) ([]*model.Message, error)
	CreateConversation(ctx context.Context, contact model.Contact, subject string) (string, error)
	DeleteConversation(ctx context.Context, convID string) error
	MarkAsRead(ctx context.Context, convID string) error
	ToggleConversationStar(ctx context.Context, convID string) (bool, error)
	ToggleImportant(ctx context.Context, convID string) (bool, error)
	ToggleMessageStar(ctx context.Context, convID, msgID string) (bool, error)
	RetryMessage(ctx context.Context, convID, msgID string) error
	Close()
}

type stage struct {
	status string
	delay  time.Duration
}

type imServiceImpl struct {
	store    repository.ConversationStore
	ch       channel.Channel
	mentions MentionService
	resolver MediaService
	roster   repository.RosterRepo

	stages []stage
	fault  DeliveryFault

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewIMService 构造函数
// 每条消息的投递链路绑定服务生命周期，Close 时统一取消，避免孤儿定时器
func NewIMService(
	store repository.ConversationStore,
	ch channel.Channel,
	mentions MentionService,
	resolver MediaService,
	roster repository.RosterRepo,
	cfg config.MessagingConfig,
	fault DeliveryFault,
) IMService {
	if cfg.SentDelayMs <= 0 {
		cfg.SentDelayMs = 500
	}
	if cfg.DeliveredDelayMs <= 0 {
		cfg.DeliveredDelayMs = 1000
	}
	if cfg.ReadDelayMs <= 0 {
		cfg.ReadDelayMs = 2000
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &imServiceImpl{
		store:    store,
		ch:       ch,
		mentions: mentions,
		resolver: resolver,
		roster:   roster,
		stages: []stage{
			{model.MessageStatusSent, time.Duration(cfg.SentDelayMs) * time.Millisecond},
			{model.MessageStatusDelivered, time.Duration(cfg.DeliveredDelayMs) * time.Millisecond},
			{model.MessageStatusRead, time.Duration(cfg.ReadDelayMs) * time.Millisecond},
		},
		fault:  fault,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SendMessage 发送消息
// 乐观更新：消息以 sending 状态立即入库并刷新会话 LastMessage，
// 随后由独立的阶段定时器推进 sent → delivered → read
func (s *imServiceImpl) SendMessage(ctx context.Context, senderID string, req *dto.SendMessageReq) (*model.Message, error) {
	if req == nil || req.Content == "" || req.ConversationID == "" {
		return nil, ErrParamInvalid
	}

	if _, err := s.store.Get(req.ConversationID); err != nil {
		return nil, ErrConversationNotFound
	}

	senderName := senderID
	if member, ok := s.roster.GetByID(senderID); ok {
		senderName = member.FullName
	}

	// 附件按资源ID解析为签名资源
	var attachments []model.MediaResource
	for _, resourceID := range req.Attachments {
		res, err := s.resolver.Resolve(ctx, resourceID, 0, nil)
		if err != nil {
			log.WarnContext(ctx, "附件解析失败", "resourceID", resourceID, "err", err)
			continue
		}
		attachments = append(attachments, *res)
	}

	msg := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: req.ConversationID,
		SenderID:       senderID,
		Content:        req.Content,
		Timestamp:      time.Now(),
		Status:         model.MessageStatusSending,
		Attachments:    attachments,
	}

	if err := s.store.AppendMessage(req.ConversationID, msg); err != nil {
		return nil, ErrConversationNotFound
	}

	s.publish(&IMEvent{
		Type:           "message",
		ConversationID: req.ConversationID,
		MessageID:      msg.ID,
		Status:         msg.Status,
		Message:        msg,
	})

	// 提及解析的通知副作用
	s.mentions.ProcessMentions(ctx, senderID, senderName, req.Content)

	s.wg.Add(1)
	go s.runDelivery(req.ConversationID, msg.ID)

	return msg, nil
}

// runDelivery 独立的消息投递链，消息间互不阻塞，状态可交错推进
func (s *imServiceImpl) runDelivery(convID, msgID string) {
	defer s.wg.Done()

	for _, st := range s.stages {
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(st.delay):
		}

		if s.fault != nil {
			if err := s.fault(msgID, st.status); err != nil {
				if ferr := s.store.AdvanceMessageStatus(convID, msgID, model.MessageStatusFailed); ferr != nil {
					log.Warn("消息置为失败态时被拒绝", "msgID", msgID, "err", ferr)
					return
				}
				s.publish(&IMEvent{
					Type:           "status",
					ConversationID: convID,
					MessageID:      msgID,
					Status:         model.MessageStatusFailed,
				})
				return
			}
		}

		if err := s.store.AdvanceMessageStatus(convID, msgID, st.status); err != nil {
			// 会话被删除或消息已被外部置为终态，链路就此停止
			return
		}
		s.publish(&IMEvent{
			Type:           "status",
			ConversationID: convID,
			MessageID:      msgID,
			Status:         st.status,
		})
	}
}

func (s *imServiceImpl) publish(ev *IMEvent) {
	payload, err := marshalEvent(ev)
	if err != nil {
		return
	}
	if err := s.ch.Publish(s.ctx, consts.IMConversationKey+ev.ConversationID, payload); err != nil {
		log.Warn("会话事件推送失败", "conversationID", ev.ConversationID, "err", err)
	}
}

func (s *imServiceImpl) GetConversationList(_ context.Context, userID string) []*model.Conversation {
	return s.store.List(userID)
}

func (s *imServiceImpl) GetHistory(_ context.Context, convID string) ([]*model.Message, error) {
	conv, err := s.store.Get(convID)
	if err != nil {
		return nil, ErrConversationNotFound
	}
	return conv.Messages, nil
}

// CreateConversation 新建会话
// 前置条件：联系人必须有非空的 ID 和姓名
func (s *imServiceImpl) CreateConversation(_ context.Context, contact model.Contact, subject string) (string, error) {
	if contact.ID == "" || contact.Name == "" {
		return "", ErrContactInvalid
	}

	conv := &model.Conversation{
		Contact:       contact,
		Subject:       subject,
		CreatedAt:     time.Now(),
		LastMessageAt: time.Now(),
	}
	if err := s.store.Create(conv); err != nil {
		return "", err
	}
	return conv.ID, nil
}

// DeleteConversation 原子删除会话及其全部消息
func (s *imServiceImpl) DeleteConversation(_ context.Context, convID string) error {
	if err := s.store.Delete(convID); err != nil {
		return ErrConversationNotFound
	}
	return nil
}

// MarkAsRead 会话一键已读
func (s *imServiceImpl) MarkAsRead(_ context.Context, convID string) error {
	if err := s.store.MarkConversationRead(convID); err != nil {
		return ErrConversationNotFound
	}
	s.publish(&IMEvent{Type: "read", ConversationID: convID})
	return nil
}

func (s *imServiceImpl) ToggleConversationStar(_ context.Context, convID string) (bool, error) {
	on, err := s.store.ToggleConversationStar(convID)
	if err != nil {
		return false, ErrConversationNotFound
	}
	return on, nil
}

func (s *imServiceImpl) ToggleImportant(_ context.Context, convID string) (bool, error) {
	on, err := s.store.ToggleImportant(convID)
	if err != nil {
		return false, ErrConversationNotFound
	}
	return on, nil
}

func (s *imServiceImpl) ToggleMessageStar(_ context.Context, convID, msgID string) (bool, error) {
	on, err := s.store.ToggleMessageStar(convID, msgID)
	if err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			return false, ErrConversationNotFound
		}
		return false, ErrMessageNotFound
	}
	return on, nil
}

// RetryMessage 重试失败的消息，状态回到 sending 并重启投递链
func (s *imServiceImpl) RetryMessage(_ context.Context, convID, msgID string) error {
	if err := s.store.AdvanceMessageStatus(convID, msgID, model.MessageStatusSending); err != nil {
		switch {
		case errors.Is(err, repository.ErrConversationNotFound):
			return ErrConversationNotFound
		case errors.Is(err, repository.ErrMessageNotFound):
			return ErrMessageNotFound
		default:
			return ErrRetryNotAllowed
		}
	}

	s.publish(&IMEvent{
		Type:           "status",
		ConversationID: convID,
		MessageID:      msgID,
		Status:         model.MessageStatusSending,
	})

	s.wg.Add(1)
	go s.runDelivery(convID, msgID)
	return nil
}

// Close 取消所有在途投递链并等待退出
func (s *imServiceImpl) Close() {
	s.cancel()
	s.wg.Wait()
}
