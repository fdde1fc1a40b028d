package channel

import (
	"context"
	"sync"
)

// MemoryChannel 进程内实时通道，用于测试与本地模拟
type MemoryChannel struct {
	mu   sync.RWMutex
	subs map[string]map[int]chan Event
	next int
}

func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{subs: make(map[string]map[int]chan Event)}
}

func (c *MemoryChannel) Publish(_ context.Context, topic string, payload []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, ch := range c.subs[topic] {
		select {
		case ch <- Event{Topic: topic, Payload: payload}:
		default:
			// 订阅者缓冲已满则丢弃，推送通道不保证可靠投递
		}
	}
	return nil
}

func (c *MemoryChannel) Subscribe(_ context.Context, topics ...string) (<-chan Event, func(), error) {
	ch := make(chan Event, 64)

	c.mu.Lock()
	id := c.next
	c.next++
	for _, t := range topics {
		if c.subs[t] == nil {
			c.subs[t] = make(map[int]chan Event)
		}
		c.subs[t][id] = ch
	}
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			for _, t := range topics {
				delete(c.subs[t], id)
			}
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}
