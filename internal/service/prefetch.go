package service

import (
	"Vanguard/internal/api/config"
	"Vanguard/internal/pkg/consts"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// PrefetchQueue 序列资源预取队列
// 会话/进程级生命周期，重启即清空；同一个 next 资源在队列中只会出现一次
type PrefetchQueue struct {
	backend  MediaBackend
	resolver MediaService
	cfg      config.MediaConfig

	mu     sync.Mutex
	queued map[string]struct{}
	wg     sync.WaitGroup

	warmClient *resty.Client
}

func NewPrefetchQueue(backend MediaBackend, resolver MediaService, cfg config.MediaConfig) *PrefetchQueue {
	if cfg.PrefetchTTLFactor <= 0 {
		cfg.PrefetchTTLFactor = consts.DefaultPrefetchTTLx
	}
	if cfg.DefaultTTLSeconds <= 0 {
		cfg.DefaultTTLSeconds = consts.DefaultTTLSeconds
	}
	return &PrefetchQueue{
		backend:  backend,
		resolver: resolver,
		cfg:      cfg,
		queued:   make(map[string]struct{}),
		warmClient: resty.New().
			SetTimeout(15 * time.Second).
			SetRetryCount(0),
	}
}

// PrefetchNext 预取当前资源的下一序列资源
// 解析TTL放大为播放TTL的若干倍，容忍切换时的缓冲延迟
func (q *PrefetchQueue) PrefetchNext(ctx context.Context, currentResourceID string) {
	if currentResourceID == "" {
		return
	}

	meta, err := q.backend.Stat(ctx, currentResourceID)
	if err != nil || meta.NextInSequence == "" {
		return
	}
	next := meta.NextInSequence

	q.mu.Lock()
	if _, ok := q.queued[next]; ok {
		q.mu.Unlock()
		return
	}
	q.queued[next] = struct{}{}
	q.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()

		bgCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ttl := q.cfg.DefaultTTLSeconds * q.cfg.PrefetchTTLFactor
		res, err := q.resolver.Resolve(bgCtx, next, ttl, nil)
		if err != nil {
			log.Warn("预取解析失败", "resourceID", next, "err", err)
			return
		}

		// 预热：对流URL发一次GET，驱动CDN边缘回源
		if !res.Fallback {
			if _, err := q.warmClient.R().SetContext(bgCtx).Get(res.StreamURL); err != nil {
				log.Warn("预取预热请求失败", "resourceID", next, "err", err)
			}
		}
		log.Info("序列资源预取完成", "resourceID", next, "expiresAt", res.ExpiresAt)
	}()
}

// Contains 判断资源是否已在队列中
func (q *PrefetchQueue) Contains(resourceID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.queued[resourceID]
	return ok
}

// Len 当前队列大小
func (q *PrefetchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queued)
}

// Wait 等待后台预取全部结束，测试用
func (q *PrefetchQueue) Wait() {
	q.wg.Wait()
}
