package dto

import "time"

// MediaResourceDTO 签名资源响应
type MediaResourceDTO struct {
	ID             string            `json:"id"`
	Kind           string            `json:"kind"`
	StreamURL      string            `json:"stream_url"`
	ViewURL        string            `json:"view_url"`
	DownloadURL    string            `json:"download_url"`
	AssetURLs      map[string]string `json:"asset_urls"`
	Region         string            `json:"region"`
	ExpiresAt      time.Time         `json:"expires_at"`
	NextInSequence string            `json:"next_in_sequence,omitempty"`
	Fallback       bool              `json:"fallback"`
}

// MediaTempMetadata 暂存媒体的元信息，缓存在Redis哈希里
type MediaTempMetadata struct {
	MimeType  string `json:"mime_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"created_at"`
}
