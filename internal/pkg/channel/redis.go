package channel

import (
	"Vanguard/internal/pkg/redis"
	"context"
)

// RedisChannel 基于 Redis Pub/Sub 的实时通道
type RedisChannel struct{}

func NewRedisChannel() *RedisChannel {
	return &RedisChannel{}
}

func (c *RedisChannel) Publish(ctx context.Context, topic string, payload []byte) error {
	return redis.Publish(ctx, topic, payload)
}

func (c *RedisChannel) Subscribe(ctx context.Context, topics ...string) (<-chan Event, func(), error) {
	pubsub := redis.Subscribe(ctx, topics...)

	out := make(chan Event, 64)
	done := make(chan struct{})

	go func() {
		defer close(out)
		src := pubsub.Channel()
		for {
			select {
			case msg, ok := <-src:
				if !ok {
					return
				}
				select {
				case out <- Event{Topic: msg.Channel, Payload: []byte(msg.Payload)}:
				case <-done:
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		close(done)
		_ = pubsub.Close()
	}
	return out, cancel, nil
}
