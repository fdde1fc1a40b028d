package model

import "time"

const (
	MediaKindVideo    = "video"
	MediaKindDocument = "document"
	MediaKindImage    = "image"
	MediaKindAudio    = "audio"
)

// 资产类别：一次解析会为每个类别各签发一条URL
const (
	AssetStream     = "stream"
	AssetThumbnail  = "thumbnail"
	AssetManifest   = "manifest"
	AssetDownload   = "download"
	AssetTranscript = "transcript"
)

// MediaResource 签名媒体资源
// 每次解析都会生成新的签名URL，同一ID的资源从不原地修改
type MediaResource struct {
	ID             string            `json:"id"`
	Kind           string            `json:"kind"` // video / document / image / audio
	StreamURL      string            `json:"stream_url"`
	ViewURL        string            `json:"view_url"`
	DownloadURL    string            `json:"download_url"`
	AssetURLs      map[string]string `json:"asset_urls"` // 按资产类别的全量签名URL
	Region         string            `json:"region"`
	ExpiresAt      time.Time         `json:"expires_at"`
	NextInSequence string            `json:"next_in_sequence,omitempty"` // 仅用于预取排序
	Fallback       bool              `json:"fallback"`                   // 后端存储不可用时的合成资源
}

// Expired 判断签名URL是否已过期
func (m *MediaResource) Expired(now time.Time) bool {
	return now.After(m.ExpiresAt)
}

// MediaObjectInfo 后端存储中的资源元数据
type MediaObjectInfo struct {
	ResourceID     string `json:"resource_id"`
	Kind           string `json:"kind"`
	ContentType    string `json:"content_type"`
	Size           int64  `json:"size"`
	NextInSequence string `json:"next_in_sequence"`
}

// PlaybackSnapshot 播放进度快照，按资源+用户维度落盘
type PlaybackSnapshot struct {
	ResourceID      string    `json:"resource_id"`
	ActorID         string    `json:"actor_id"`
	CurrentTime     float64   `json:"current_time"`
	Duration        float64   `json:"duration"`
	IsPlaying       bool      `json:"is_playing"`
	Buffered        float64   `json:"buffered"`
	Quality         string    `json:"quality"`
	PercentComplete float64   `json:"percent_complete"`
	UpdatedAt       time.Time `json:"updated_at"`
}
