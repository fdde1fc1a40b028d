package repository

import (
	"Vanguard/internal/model"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationStore 站内通知存储接口
type NotificationStore interface {
	Add(n *model.Notification) *model.Notification
	List(receiverID string, page, pageSize int) []*model.Notification
	GetByID(id string) (*model.Notification, error)
	UnreadCount(receiverID string) int
	MarkRead(id string) error
	MarkAllRead(receiverID string)
}

type memoryNotificationStore struct {
	mu    sync.RWMutex
	items []*model.Notification
}

func NewNotificationStore() NotificationStore {
	return &memoryNotificationStore{}
}

// Add 追加通知，最新的在前
func (s *memoryNotificationStore) Add(n *model.Notification) *model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *n
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.items = append([]*model.Notification{&cp}, s.items...)

	out := cp
	return &out
}

func (s *memoryNotificationStore) List(receiverID string, page, pageSize int) []*model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var mine []*model.Notification
	for _, n := range s.items {
		if n.ReceiverID == receiverID {
			cp := *n
			mine = append(mine, &cp)
		}
	}

	start := (page - 1) * pageSize
	if start >= len(mine) {
		return nil
	}
	end := start + pageSize
	if end > len(mine) {
		end = len(mine)
	}
	return mine[start:end]
}

func (s *memoryNotificationStore) GetByID(id string) (*model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.items {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, ErrNotificationNotFound
}

func (s *memoryNotificationStore) UnreadCount(receiverID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.items {
		if n.ReceiverID == receiverID && !n.Read {
			count++
		}
	}
	return count
}

func (s *memoryNotificationStore) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.items {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (s *memoryNotificationStore) MarkAllRead(receiverID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.items {
		if n.ReceiverID == receiverID {
			n.Read = true
		}
	}
}
