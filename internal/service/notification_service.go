package service

import (
	"Vanguard/internal/model"
	"Vanguard/internal/pkg/channel"
	"Vanguard/internal/pkg/consts"
	"Vanguard/internal/repository"
	"context"
	"errors"
	log "log/slog"
)

// NotificationService 站内通知服务接口定义
type NotificationService interface {
	Notify(ctx context.Context, n *model.Notification) *model.Notification
	GetNotificationList(ctx context.Context, userID string, page, pageSize int) []*model.Notification
	GetUnreadCount(ctx context.Context, userID string) int
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string)
}

type notificationServiceImpl struct {
	store repository.NotificationStore
	ch    channel.Channel
}

func NewNotificationService(store repository.NotificationStore, ch channel.Channel) NotificationService {
	return &notificationServiceImpl{store: store, ch: ch}
}

// Notify 写入通知并推送到接收者的个人频道
func (s *notificationServiceImpl) Notify(ctx context.Context, n *model.Notification) *model.Notification {
	if n.Type == "" {
		n.Type = model.NotificationTypeStandard
	}
	saved := s.store.Add(n)

	payload, err := marshalEvent(map[string]any{"type": "notification", "notification": saved})
	if err == nil {
		if err := s.ch.Publish(ctx, consts.NotifyUserKey+saved.ReceiverID, payload); err != nil {
			log.WarnContext(ctx, "通知推送失败", "receiverID", saved.ReceiverID, "err", err)
		}
	}
	return saved
}

func (s *notificationServiceImpl) GetNotificationList(_ context.Context, userID string, page, pageSize int) []*model.Notification {
	return s.store.List(userID, page, pageSize)
}

func (s *notificationServiceImpl) GetUnreadCount(_ context.Context, userID string) int {
	return s.store.UnreadCount(userID)
}

// MarkRead 标记单条已读，校验归属
func (s *notificationServiceImpl) MarkRead(_ context.Context, userID, notificationID string) error {
	n, err := s.store.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.ReceiverID != userID {
		return UnauthorizedError
	}
	if n.Read {
		return nil
	}
	return s.store.MarkRead(notificationID)
}

// MarkAllRead 一键已读
func (s *notificationServiceImpl) MarkAllRead(_ context.Context, userID string) {
	s.store.MarkAllRead(userID)
}
