package repository

import (
	"Vanguard/internal/model"
	"Vanguard/internal/pkg/consts"
	"Vanguard/internal/pkg/redis"
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var ErrSnapshotUnavailable = errors.New("snapshot store unavailable")

// PlaybackRepo 播放快照仓库
type PlaybackRepo interface {
	Save(ctx context.Context, snap *model.PlaybackSnapshot) error
	Get(ctx context.Context, resourceID, actorID string) (*model.PlaybackSnapshot, error)
	// SweepStale 清理闲置超过 maxIdle 的快照，返回清理数量
	SweepStale(ctx context.Context, maxIdle time.Duration) (int, error)
}

// redisPlaybackRepo 快照落盘到 Redis，key 形如 playback:snapshot:<resource>:<actor>
type redisPlaybackRepo struct{}

func NewPlaybackRepo() PlaybackRepo {
	return &redisPlaybackRepo{}
}

func (r *redisPlaybackRepo) key(resourceID, actorID string) string {
	return consts.PlaybackSnapshotKey + resourceID + ":" + actorID
}

func (r *redisPlaybackRepo) Save(ctx context.Context, snap *model.PlaybackSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return redis.SetValue(ctx, r.key(snap.ResourceID, snap.ActorID), string(raw))
}

func (r *redisPlaybackRepo) Get(ctx context.Context, resourceID, actorID string) (*model.PlaybackSnapshot, error) {
	raw, err := redis.GetValue(ctx, r.key(resourceID, actorID))
	if err != nil || raw == "" {
		return nil, err
	}
	var snap model.PlaybackSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *redisPlaybackRepo) SweepStale(ctx context.Context, maxIdle time.Duration) (int, error) {
	keys, err := redis.ScanKeys(ctx, consts.PlaybackSnapshotKey+"*")
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxIdle)
	count := 0
	for _, key := range keys {
		raw, err := redis.GetValue(ctx, key)
		if err != nil || raw == "" {
			continue
		}
		var snap model.PlaybackSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			continue
		}
		if snap.UpdatedAt.Before(cutoff) {
			if err := redis.DeleteKey(ctx, key); err == nil {
				count++
			}
		}
	}
	return count, nil
}

// MemoryPlaybackRepo 进程内快照仓库，测试用
type MemoryPlaybackRepo struct {
	mu    sync.RWMutex
	snaps map[string]*model.PlaybackSnapshot
	// FailSave 置为 true 时 Save 返回错误，用于验证跟踪失败被吞掉
	FailSave bool
}

func NewMemoryPlaybackRepo() *MemoryPlaybackRepo {
	return &MemoryPlaybackRepo{snaps: make(map[string]*model.PlaybackSnapshot)}
}

func (r *MemoryPlaybackRepo) Save(_ context.Context, snap *model.PlaybackSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailSave {
		return ErrSnapshotUnavailable
	}
	cp := *snap
	r.snaps[snap.ResourceID+":"+snap.ActorID] = &cp
	return nil
}

func (r *MemoryPlaybackRepo) Get(_ context.Context, resourceID, actorID string) (*model.PlaybackSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.snaps[resourceID+":"+actorID]
	if !ok {
		return nil, nil
	}
	cp := *snap
	return &cp, nil
}

func (r *MemoryPlaybackRepo) SweepStale(_ context.Context, maxIdle time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	count := 0
	for key, snap := range r.snaps {
		if snap.UpdatedAt.Before(cutoff) {
			delete(r.snaps, key)
			count++
		}
	}
	return count, nil
}
