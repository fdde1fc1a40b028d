package service

import (
	"Vanguard/internal/api/config"
	"Vanguard/internal/model"
	"Vanguard/internal/pkg/consts"
	"Vanguard/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// PlaybackUpdate 播放状态的部分更新，nil 字段表示未上报
type PlaybackUpdate struct {
	CurrentTime *float64
	Duration    *float64
	Buffered    *float64
	IsPlaying   *bool
	Quality     *string
}

// PlaybackService 播放进度跟踪服务
type PlaybackService interface {
	// Track 落盘播放快照并在达到阈值时触发预取
	// fire-and-forget：持久化失败只记日志，绝不打断播放
	Track(ctx context.Context, resourceID string, update *PlaybackUpdate, actorID string)
}

type playbackServiceImpl struct {
	repo      repository.PlaybackRepo
	prefetch  *PrefetchQueue
	threshold float64
}

func NewPlaybackService(repo repository.PlaybackRepo, prefetch *PrefetchQueue, cfg config.MediaConfig) PlaybackService {
	threshold := cfg.PrefetchThreshold
	if threshold <= 0 {
		threshold = consts.DefaultThreshold
	}
	return &playbackServiceImpl{
		repo:      repo,
		prefetch:  prefetch,
		threshold: threshold,
	}
}

func (s *playbackServiceImpl) Track(ctx context.Context, resourceID string, update *PlaybackUpdate, actorID string) {
	if resourceID == "" || update == nil {
		return
	}

	snap, err := s.repo.Get(ctx, resourceID, actorID)
	if err != nil || snap == nil {
		snap = &model.PlaybackSnapshot{ResourceID: resourceID, ActorID: actorID}
	}

	if update.Duration != nil {
		snap.Duration = *update.Duration
	}
	if update.CurrentTime != nil {
		snap.CurrentTime = *update.CurrentTime
	}
	if update.Buffered != nil {
		snap.Buffered = *update.Buffered
	}
	if update.IsPlaying != nil {
		snap.IsPlaying = *update.IsPlaying
	}
	if update.Quality != nil {
		snap.Quality = *update.Quality
	}

	// 不变式: 0 <= CurrentTime <= Duration
	if snap.CurrentTime < 0 {
		snap.CurrentTime = 0
	}
	if snap.Duration > 0 && snap.CurrentTime > snap.Duration {
		snap.CurrentTime = snap.Duration
	}

	if snap.Duration > 0 {
		snap.PercentComplete = snap.CurrentTime / snap.Duration * 100
	}
	snap.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, snap); err != nil {
		log.WarnContext(ctx, "播放快照落盘失败", "resourceID", resourceID, "actorID", actorID, "err", err)
	}

	// 阈值触发预取，队列成员判定保证每个资源最多触发一次
	if snap.Duration > 0 && snap.PercentComplete >= s.threshold {
		s.prefetch.PrefetchNext(ctx, resourceID)
	}
}
