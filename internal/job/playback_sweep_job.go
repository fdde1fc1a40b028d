package job

import (
	"Vanguard/internal/pkg/consts"
	"Vanguard/internal/pkg/redis"
	"Vanguard/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// PlaybackSweepJob 清理长期闲置的播放进度快照
type PlaybackSweepJob struct {
	repo repository.PlaybackRepo
}

func NewPlaybackSweepJob(repo repository.PlaybackRepo) *PlaybackSweepJob {
	return &PlaybackSweepJob{repo: repo}
}

func (s *PlaybackSweepJob) Run() {
	ctx := context.Background()

	locked, err := redis.TryLock(ctx, consts.PlaybackSweepLockKey, "1", 10*time.Minute, 1)
	if err != nil || !locked {
		return
	}
	defer redis.UnLock(ctx, consts.PlaybackSweepLockKey, "1")

	count, err := s.repo.SweepStale(ctx, 30*24*time.Hour)
	if err != nil {
		log.Error("failed to sweep stale playback snapshots", "err", err)
		return
	}

	if count > 0 {
		log.Info("playback sweep job finished", "swept_count", count)
	}
}
