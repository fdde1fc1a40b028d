package service

import (
	"Vanguard/internal/api/config"
	"Vanguard/internal/model"
	"Vanguard/internal/repository"
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// stubResolver 只计数的解析桩，返回合成资源以跳过预热请求
type stubResolver struct {
	calls int64
}

func (r *stubResolver) Resolve(_ context.Context, resourceID string, ttlSeconds int, _ *ResolveConstraints) (*model.MediaResource, error) {
	atomic.AddInt64(&r.calls, 1)
	return &model.MediaResource{
		ID:        resourceID,
		Fallback:  true,
		ExpiresAt: time.Now().Add(time.Duration(ttlSeconds) * time.Second),
	}, nil
}

func newPlaybackFixture(next string) (*repository.MemoryPlaybackRepo, *stubResolver, PlaybackService, *PrefetchQueue) {
	repo := repository.NewMemoryPlaybackRepo()
	backend := &fakeBackend{next: next}
	resolver := &stubResolver{}
	cfg := config.MediaConfig{DefaultTTLSeconds: 600, PrefetchTTLFactor: 2, PrefetchThreshold: 80}
	queue := NewPrefetchQueue(backend, resolver, cfg)
	svc := NewPlaybackService(repo, queue, cfg)
	return repo, resolver, svc, queue
}

func f64(v float64) *float64 { return &v }

func TestTrackSavesSnapshot(t *testing.T) {
	repo, _, svc, _ := newPlaybackFixture("")
	ctx := context.Background()

	svc.Track(ctx, "video-101", &PlaybackUpdate{CurrentTime: f64(30), Duration: f64(120)}, "u1")

	snap, err := repo.Get(ctx, "video-101", "u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if snap == nil {
		t.Fatal("snapshot not saved")
	}
	if snap.PercentComplete != 25 {
		t.Errorf("PercentComplete = %v, want 25", snap.PercentComplete)
	}
}

func TestTrackMergesPartialUpdate(t *testing.T) {
	repo, _, svc, _ := newPlaybackFixture("")
	ctx := context.Background()

	svc.Track(ctx, "video-101", &PlaybackUpdate{CurrentTime: f64(30), Duration: f64(120)}, "u1")
	// 只上报进度，时长沿用上次快照
	svc.Track(ctx, "video-101", &PlaybackUpdate{CurrentTime: f64(60)}, "u1")

	snap, _ := repo.Get(ctx, "video-101", "u1")
	if snap.Duration != 120 {
		t.Errorf("Duration = %v, want merged 120", snap.Duration)
	}
	if snap.PercentComplete != 50 {
		t.Errorf("PercentComplete = %v, want 50", snap.PercentComplete)
	}
}

func TestTrackClampsCurrentTime(t *testing.T) {
	repo, _, svc, _ := newPlaybackFixture("")
	ctx := context.Background()

	svc.Track(ctx, "video-101", &PlaybackUpdate{CurrentTime: f64(500), Duration: f64(120)}, "u1")
	snap, _ := repo.Get(ctx, "video-101", "u1")
	if snap.CurrentTime != 120 {
		t.Errorf("CurrentTime = %v, want clamped to duration", snap.CurrentTime)
	}

	svc.Track(ctx, "video-101", &PlaybackUpdate{CurrentTime: f64(-5)}, "u1")
	snap, _ = repo.Get(ctx, "video-101", "u1")
	if snap.CurrentTime != 0 {
		t.Errorf("CurrentTime = %v, want clamped to 0", snap.CurrentTime)
	}
}

func TestTrackSurvivesSaveFailure(t *testing.T) {
	repo, _, svc, _ := newPlaybackFixture("")
	repo.FailSave = true

	// 落盘失败不能上抛，调用不应 panic 或报错
	svc.Track(context.Background(), "video-101", &PlaybackUpdate{CurrentTime: f64(10), Duration: f64(100)}, "u1")
}

func TestTrackTriggersPrefetchOnce(t *testing.T) {
	_, resolver, svc, queue := newPlaybackFixture("video-102")
	ctx := context.Background()

	// 阈值以下不触发
	svc.Track(ctx, "video-101", &PlaybackUpdate{CurrentTime: f64(60), Duration: f64(120)}, "u1")
	if queue.Len() != 0 {
		t.Fatalf("queue length = %d before threshold, want 0", queue.Len())
	}

	// 跨过 80% 阈值
	svc.Track(ctx, "video-101", &PlaybackUpdate{CurrentTime: f64(100)}, "u1")
	queue.Wait()
	if !queue.Contains("video-102") {
		t.Fatal("next resource not queued after crossing threshold")
	}

	// 反复上报不重复预取
	svc.Track(ctx, "video-101", &PlaybackUpdate{CurrentTime: f64(110)}, "u1")
	svc.Track(ctx, "video-101", &PlaybackUpdate{CurrentTime: f64(115)}, "u1")
	queue.Wait()

	if got := atomic.LoadInt64(&resolver.calls); got != 1 {
		t.Errorf("resolver called %d times, want exactly 1", got)
	}
	if queue.Len() != 1 {
		t.Errorf("queue length = %d, want 1", queue.Len())
	}
}

func TestPrefetchNoNextInSequence(t *testing.T) {
	_, resolver, _, queue := newPlaybackFixture("")

	queue.PrefetchNext(context.Background(), "video-101")
	queue.Wait()

	if queue.Len() != 0 {
		t.Errorf("queue length = %d, want 0 for resource without successor", queue.Len())
	}
	if atomic.LoadInt64(&resolver.calls) != 0 {
		t.Error("resolver called for resource without successor")
	}
}

func TestPrefetchUsesExtendedTTL(t *testing.T) {
	backend := &fakeBackend{next: "video-102"}
	var gotTTL int64
	resolver := &ttlRecordingResolver{ttl: &gotTTL}
	cfg := config.MediaConfig{DefaultTTLSeconds: 600, PrefetchTTLFactor: 2}
	queue := NewPrefetchQueue(backend, resolver, cfg)

	queue.PrefetchNext(context.Background(), "video-101")
	queue.Wait()

	if got := atomic.LoadInt64(&gotTTL); got != 1200 {
		t.Errorf("prefetch resolve ttl = %d, want 1200 (2x default)", got)
	}
}

type ttlRecordingResolver struct {
	ttl *int64
}

func (r *ttlRecordingResolver) Resolve(_ context.Context, resourceID string, ttlSeconds int, _ *ResolveConstraints) (*model.MediaResource, error) {
	atomic.StoreInt64(r.ttl, int64(ttlSeconds))
	return &model.MediaResource{ID: resourceID, Fallback: true}, nil
}
