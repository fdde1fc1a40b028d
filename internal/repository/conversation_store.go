package repository

import (
	"Vanguard/internal/model"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrIllegalTransition    = errors.New("illegal message status transition")
)

// ConversationStore 会话存储接口
type ConversationStore interface {
	List(ownerID string) []*model.Conversation
	Get(convID string) (*model.Conversation, error)
	Create(conv *model.Conversation) error
	Delete(convID string) error
	AppendMessage(convID string, msg *model.Message) error
	GetMessage(convID, msgID string) (*model.Message, error)
	// AdvanceMessageStatus 按状态机推进消息状态，非法迁移返回错误
	AdvanceMessageStatus(convID, msgID, to string) error
	MarkConversationRead(convID string) error
	ToggleConversationStar(convID string) (bool, error)
	ToggleImportant(convID string) (bool, error)
	ToggleMessageStar(convID, msgID string) (bool, error)
}

// memoryConversationStore 进程内会话存储
// 所有读操作返回副本，写操作持锁原地更新，避免共享可变别名
type memoryConversationStore struct {
	mu    sync.RWMutex
	convs map[string]*model.Conversation
}

// NewConversationStore 构造会话存储，seed 为初始会话数据
func NewConversationStore(seed []*model.Conversation) ConversationStore {
	s := &memoryConversationStore{convs: make(map[string]*model.Conversation)}
	for _, c := range seed {
		cp := cloneConversation(c)
		if cp.ID == "" {
			cp.ID = uuid.NewString()
		}
		s.convs[cp.ID] = cp
	}
	return s
}

func (s *memoryConversationStore) List(_ string) []*model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*model.Conversation, 0, len(s.convs))
	for _, c := range s.convs {
		res = append(res, cloneConversation(c))
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].LastMessageAt.After(res[j].LastMessageAt)
	})
	return res
}

func (s *memoryConversationStore) Get(convID string) (*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[convID]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return cloneConversation(c), nil
}

func (s *memoryConversationStore) Create(conv *model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := cloneConversation(conv)
	if cp.ID == "" {
		cp.ID = uuid.NewString()
		conv.ID = cp.ID
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.convs[cp.ID] = cp
	return nil
}

// Delete 原子移除会话及其全部消息
func (s *memoryConversationStore) Delete(convID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.convs[convID]; !ok {
		return ErrConversationNotFound
	}
	delete(s.convs, convID)
	return nil
}

// AppendMessage 追加消息并立即刷新会话的 LastMessage（乐观更新）
func (s *memoryConversationStore) AppendMessage(convID string, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[convID]
	if !ok {
		return ErrConversationNotFound
	}

	cp := cloneMessage(msg)
	c.Messages = append(c.Messages, cp)
	c.LastMessage = cp.Content
	c.LastMessageAt = cp.Timestamp
	if cp.SenderID == c.Contact.ID && cp.Status != model.MessageStatusRead {
		c.UnreadCount++
	}
	return nil
}

func (s *memoryConversationStore) GetMessage(convID, msgID string) (*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[convID]
	if !ok {
		return nil, ErrConversationNotFound
	}
	for _, m := range c.Messages {
		if m.ID == msgID {
			return cloneMessage(m), nil
		}
	}
	return nil, ErrMessageNotFound
}

func (s *memoryConversationStore) AdvanceMessageStatus(convID, msgID, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[convID]
	if !ok {
		return ErrConversationNotFound
	}
	for _, m := range c.Messages {
		if m.ID != msgID {
			continue
		}
		if !model.CanAdvance(m.Status, to) {
			return errors.Wrapf(ErrIllegalTransition, "%s -> %s", m.Status, to)
		}
		m.Status = to
		return nil
	}
	return ErrMessageNotFound
}

// MarkConversationRead 清零未读数并把对手方消息全部置为已读
func (s *memoryConversationStore) MarkConversationRead(convID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[convID]
	if !ok {
		return ErrConversationNotFound
	}
	for _, m := range c.Messages {
		if m.SenderID == c.Contact.ID && m.Status != model.MessageStatusRead {
			m.Status = model.MessageStatusRead
		}
	}
	c.UnreadCount = 0
	return nil
}

func (s *memoryConversationStore) ToggleConversationStar(convID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[convID]
	if !ok {
		return false, ErrConversationNotFound
	}
	c.IsStarred = !c.IsStarred
	return c.IsStarred, nil
}

func (s *memoryConversationStore) ToggleImportant(convID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[convID]
	if !ok {
		return false, ErrConversationNotFound
	}
	c.IsImportant = !c.IsImportant
	return c.IsImportant, nil
}

func (s *memoryConversationStore) ToggleMessageStar(convID, msgID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[convID]
	if !ok {
		return false, ErrConversationNotFound
	}
	for _, m := range c.Messages {
		if m.ID == msgID {
			m.IsStarred = !m.IsStarred
			return m.IsStarred, nil
		}
	}
	return false, ErrMessageNotFound
}

func cloneConversation(c *model.Conversation) *model.Conversation {
	cp := *c
	cp.Messages = make([]*model.Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		cp.Messages = append(cp.Messages, cloneMessage(m))
	}
	return &cp
}

func cloneMessage(m *model.Message) *model.Message {
	cp := *m
	if m.Attachments != nil {
		cp.Attachments = append([]model.MediaResource(nil), m.Attachments...)
	}
	return &cp
}
