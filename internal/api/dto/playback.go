package dto

// TrackPlaybackReq 播放进度上报
type TrackPlaybackReq struct {
	ResourceID  string   `json:"resource_id" binding:"required"`
	CurrentTime *float64 `json:"current_time"`
	Duration    *float64 `json:"duration"`
	Buffered    *float64 `json:"buffered"`
	IsPlaying   *bool    `json:"is_playing"`
	Quality     *string  `json:"quality"`
}
