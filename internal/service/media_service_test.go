package service

import (
	"Vanguard/internal/api/config"
	"Vanguard/internal/model"
	"Vanguard/internal/pkg/security"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// fakeBackend 可编程的后端存储桩
type fakeBackend struct {
	statCalls int64
	failStat  bool
	failSign  bool
	next      string
	kind      string
}

func (b *fakeBackend) Stat(_ context.Context, resourceID string) (*model.MediaObjectInfo, error) {
	atomic.AddInt64(&b.statCalls, 1)
	if b.failStat {
		return nil, errors.New("backend unreachable")
	}
	kind := b.kind
	if kind == "" {
		kind = model.MediaKindVideo
	}
	return &model.MediaObjectInfo{
		ResourceID:     resourceID,
		Kind:           kind,
		NextInSequence: b.next,
	}, nil
}

func (b *fakeBackend) PresignedGet(_ context.Context, resourceID, asset string, ttl time.Duration) (string, error) {
	if b.failSign {
		return "", errors.New("presign failed")
	}
	return fmt.Sprintf("https://store.test/%s/%s?X-Amz-Expires=%d", resourceID, asset, int(ttl.Seconds())), nil
}

func testMediaConfig() config.MediaConfig {
	return config.MediaConfig{
		DefaultTTLSeconds: 600,
		Regions:           []string{"us-east", "eu-west"},
		FallbackBaseURL:   "https://fallback.test",
	}
}

func TestResolveSignsAllAssets(t *testing.T) {
	backend := &fakeBackend{next: "video-102"}
	signer := security.NewMediaTokenSigner("test-secret")
	svc := NewMediaService(backend, signer, testMediaConfig())

	res, err := svc.Resolve(context.Background(), "video-101", 0, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if res.ID != "video-101" {
		t.Errorf("ID = %q, want video-101", res.ID)
	}
	if res.Fallback {
		t.Error("Fallback = true, want false")
	}
	if res.Kind != model.MediaKindVideo {
		t.Errorf("Kind = %q, want video", res.Kind)
	}
	if res.NextInSequence != "video-102" {
		t.Errorf("NextInSequence = %q, want video-102", res.NextInSequence)
	}
	if res.Region != "us-east" {
		t.Errorf("Region = %q, want first configured region", res.Region)
	}

	for _, asset := range []string{model.AssetStream, model.AssetThumbnail, model.AssetManifest, model.AssetDownload, model.AssetTranscript} {
		u, ok := res.AssetURLs[asset]
		if !ok {
			t.Fatalf("AssetURLs missing %q", asset)
		}
		if !strings.Contains(u, "token=") {
			t.Errorf("asset %q URL missing signed token: %s", asset, u)
		}
		if !strings.Contains(u, "region=us-east") {
			t.Errorf("asset %q URL missing region: %s", asset, u)
		}
	}
	if res.StreamURL != res.AssetURLs[model.AssetStream] {
		t.Error("StreamURL differs from stream asset URL")
	}
}

func TestResolveTokenVerifiable(t *testing.T) {
	backend := &fakeBackend{}
	signer := security.NewMediaTokenSigner("test-secret")
	svc := NewMediaService(backend, signer, testMediaConfig())

	res, err := svc.Resolve(context.Background(), "video-101", 120, &ResolveConstraints{IPAddress: "10.1.2.3"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	idx := strings.Index(res.StreamURL, "token=")
	if idx < 0 {
		t.Fatalf("StreamURL missing token: %s", res.StreamURL)
	}
	token := res.StreamURL[idx+len("token="):]
	if amp := strings.IndexByte(token, '&'); amp >= 0 {
		token = token[:amp]
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.ResourceID != "video-101" {
		t.Errorf("token ResourceID = %q, want video-101", claims.ResourceID)
	}
	if claims.IPAddress != "10.1.2.3" {
		t.Errorf("token IPAddress = %q, want caller IP", claims.IPAddress)
	}
}

func TestResolveDefaultTTL(t *testing.T) {
	backend := &fakeBackend{}
	signer := security.NewMediaTokenSigner("test-secret")
	svc := NewMediaService(backend, signer, testMediaConfig())

	before := time.Now()
	res, err := svc.Resolve(context.Background(), "video-101", 0, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	ttl := res.ExpiresAt.Sub(before)
	if ttl < 590*time.Second || ttl > 610*time.Second {
		t.Errorf("ExpiresAt implies ttl %v, want ~600s default", ttl)
	}
	if !strings.Contains(res.StreamURL, "X-Amz-Expires=600") {
		t.Errorf("StreamURL = %s, want presign ttl 600s", res.StreamURL)
	}
}

func TestResolvePreferredRegion(t *testing.T) {
	backend := &fakeBackend{}
	signer := security.NewMediaTokenSigner("test-secret")
	svc := NewMediaService(backend, signer, testMediaConfig())

	res, err := svc.Resolve(context.Background(), "video-101", 0, &ResolveConstraints{PreferredRegion: "eu-west"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Region != "eu-west" {
		t.Errorf("Region = %q, want preferred eu-west", res.Region)
	}

	// 偏好区域不在列表中时退回第一项
	res, _ = svc.Resolve(context.Background(), "video-101", 0, &ResolveConstraints{PreferredRegion: "ap-south"})
	if res.Region != "us-east" {
		t.Errorf("Region = %q, want us-east for unknown preference", res.Region)
	}
}

func TestResolveFallbackOnBackendFailure(t *testing.T) {
	backend := &fakeBackend{failStat: true}
	signer := security.NewMediaTokenSigner("test-secret")
	svc := NewMediaService(backend, signer, testMediaConfig())

	res, err := svc.Resolve(context.Background(), "video-404", 0, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v, want graceful degradation", err)
	}

	if !res.Fallback {
		t.Fatal("Fallback = false, want synthetic resource")
	}
	if res.ID != "video-404" {
		t.Errorf("ID = %q, want video-404", res.ID)
	}
	if !strings.HasPrefix(res.StreamURL, "https://fallback.test/video-404/stream") {
		t.Errorf("StreamURL = %s, want deterministic fallback URL", res.StreamURL)
	}
	if len(res.AssetURLs) != 5 {
		t.Errorf("AssetURLs size = %d, want full asset shape", len(res.AssetURLs))
	}
}

func TestResolveFallbackOnPresignFailure(t *testing.T) {
	backend := &fakeBackend{failSign: true}
	signer := security.NewMediaTokenSigner("test-secret")
	svc := NewMediaService(backend, signer, testMediaConfig())

	res, err := svc.Resolve(context.Background(), "video-101", 0, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !res.Fallback {
		t.Error("Fallback = false, want synthetic resource on presign failure")
	}
}

func TestResolveEmptyResourceID(t *testing.T) {
	backend := &fakeBackend{}
	signer := security.NewMediaTokenSigner("test-secret")
	svc := NewMediaService(backend, signer, testMediaConfig())

	if _, err := svc.Resolve(context.Background(), "", 0, nil); !errors.Is(err, ErrResourceIDEmpty) {
		t.Errorf("Resolve() error = %v, want ErrResourceIDEmpty", err)
	}
}

func TestMediaResourceExpired(t *testing.T) {
	now := time.Now()
	res := &model.MediaResource{ExpiresAt: now.Add(time.Minute)}
	if res.Expired(now) {
		t.Error("Expired() = true before deadline")
	}
	if !res.Expired(now.Add(2 * time.Minute)) {
		t.Error("Expired() = false after deadline")
	}
}
