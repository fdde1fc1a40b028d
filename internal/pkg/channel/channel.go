package channel

import "context"

// Event 实时通道上的一条事件
type Event struct {
	Topic   string
	Payload []byte
}

// Channel 实时推送通道抽象
// 生产环境由 Redis Pub/Sub 承载，测试环境使用进程内实现
type Channel interface {
	// Publish 向指定主题发布事件
	Publish(ctx context.Context, topic string, payload []byte) error
	// Subscribe 订阅一组主题，返回事件流和取消函数
	Subscribe(ctx context.Context, topics ...string) (<-chan Event, func(), error)
}
