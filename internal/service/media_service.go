package service

import (
	"Vanguard/internal/api/config"
	"Vanguard/internal/model"
	"Vanguard/internal/pkg/consts"
	"Vanguard/internal/pkg/security"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

// MediaBackend 媒体后端存储抽象（对象存储 + 元数据）
type MediaBackend interface {
	Stat(ctx context.Context, resourceID string) (*model.MediaObjectInfo, error)
	PresignedGet(ctx context.Context, resourceID, asset string, ttl time.Duration) (string, error)
}

// ResolveConstraints 解析时的可选约束
type ResolveConstraints struct {
	IPAddress       string
	PreferredRegion string
}

// MediaService 签名资源解析服务
type MediaService interface {
	// Resolve 解析限时访问URL
	// 后端存储不可用时降级为确定性的合成资源，调用方永远拿到稳定形状
	Resolve(ctx context.Context, resourceID string, ttlSeconds int, constraints *ResolveConstraints) (*model.MediaResource, error)
}

type mediaServiceImpl struct {
	backend MediaBackend
	signer  *security.MediaTokenSigner
	cfg     config.MediaConfig
	sf      singleflight.Group
	now     func() time.Time
}

func NewMediaService(backend MediaBackend, signer *security.MediaTokenSigner, cfg config.MediaConfig) MediaService {
	if cfg.DefaultTTLSeconds <= 0 {
		cfg.DefaultTTLSeconds = consts.DefaultTTLSeconds
	}
	return &mediaServiceImpl{
		backend: backend,
		signer:  signer,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *mediaServiceImpl) Resolve(ctx context.Context, resourceID string, ttlSeconds int, constraints *ResolveConstraints) (*model.MediaResource, error) {
	if resourceID == "" {
		return nil, ErrResourceIDEmpty
	}
	if ttlSeconds <= 0 {
		ttlSeconds = s.cfg.DefaultTTLSeconds
	}
	if constraints == nil {
		constraints = &ResolveConstraints{}
	}

	// 并发解析同一资源时合并为一次后端往返
	key := resourceID + "|" + strconv.Itoa(ttlSeconds) + "|" + constraints.PreferredRegion + "|" + constraints.IPAddress
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.resolve(ctx, resourceID, ttlSeconds, constraints), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.MediaResource), nil
}

func (s *mediaServiceImpl) resolve(ctx context.Context, resourceID string, ttlSeconds int, constraints *ResolveConstraints) *model.MediaResource {
	ttl := time.Duration(ttlSeconds) * time.Second
	expiresAt := s.now().Add(ttl)
	region := s.selectRegion(constraints.PreferredRegion)

	token, err := s.signer.Sign(resourceID, constraints.IPAddress, expiresAt)
	if err != nil {
		log.ErrorContext(ctx, "媒体令牌签发失败", "resourceID", resourceID, "err", err)
		return s.fallbackResource(resourceID, region, expiresAt, "")
	}

	meta, err := s.backend.Stat(ctx, resourceID)
	if err != nil {
		log.WarnContext(ctx, "媒体元数据不可达，降级为合成资源", "resourceID", resourceID, "err", err)
		return s.fallbackResource(resourceID, region, expiresAt, token)
	}

	assets := make(map[string]string, 5)
	for _, asset := range []string{model.AssetStream, model.AssetThumbnail, model.AssetManifest, model.AssetDownload, model.AssetTranscript} {
		u, err := s.backend.PresignedGet(ctx, resourceID, asset, ttl)
		if err != nil {
			log.WarnContext(ctx, "签名URL生成失败，降级为合成资源", "resourceID", resourceID, "asset", asset, "err", err)
			return s.fallbackResource(resourceID, region, expiresAt, token)
		}
		assets[asset] = appendQuery(u, token, region)
	}

	return &model.MediaResource{
		ID:             resourceID,
		Kind:           meta.Kind,
		StreamURL:      assets[model.AssetStream],
		ViewURL:        assets[model.AssetStream],
		DownloadURL:    assets[model.AssetDownload],
		AssetURLs:      assets,
		Region:         region,
		ExpiresAt:      expiresAt,
		NextInSequence: meta.NextInSequence,
	}
}

// selectRegion 区域选择
// 真正按地理位置选择尚未实现，列表中包含偏好区域时返回它，否则取第一项
func (s *mediaServiceImpl) selectRegion(preferred string) string {
	if len(s.cfg.Regions) == 0 {
		return ""
	}
	if preferred != "" {
		for _, r := range s.cfg.Regions {
			if r == preferred {
				return r
			}
		}
	}
	return s.cfg.Regions[0]
}

// fallbackResource 确定性的合成资源，ID不变，形状与正常解析一致
func (s *mediaServiceImpl) fallbackResource(resourceID, region string, expiresAt time.Time, token string) *model.MediaResource {
	base := s.cfg.FallbackBaseURL
	if base == "" {
		base = "https://media.vanguard.local"
	}

	assets := make(map[string]string, 5)
	for _, asset := range []string{model.AssetStream, model.AssetThumbnail, model.AssetManifest, model.AssetDownload, model.AssetTranscript} {
		assets[asset] = appendQuery(fmt.Sprintf("%s/%s/%s", base, resourceID, asset), token, region)
	}

	return &model.MediaResource{
		ID:          resourceID,
		Kind:        model.MediaKindVideo,
		StreamURL:   assets[model.AssetStream],
		ViewURL:     assets[model.AssetStream],
		DownloadURL: assets[model.AssetDownload],
		AssetURLs:   assets,
		Region:      region,
		ExpiresAt:   expiresAt,
		Fallback:    true,
	}
}

func appendQuery(rawURL, token, region string) string {
	sep := "?"
	for _, c := range rawURL {
		if c == '?' {
			sep = "&"
			break
		}
	}
	out := rawURL
	if token != "" {
		out += sep + "token=" + token
		sep = "&"
	}
	if region != "" {
		out += sep + "region=" + region
	}
	return out
}
