package handler

import (
	"Vanguard/internal/api/dto"
	"Vanguard/internal/pkg/response"
	"Vanguard/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaybackHandler struct {
	playbackService service.PlaybackService
}

func NewPlaybackHandler(playbackService service.PlaybackService) *PlaybackHandler {
	return &PlaybackHandler{playbackService: playbackService}
}

// Track 上报播放进度
// 持久化失败由服务层吞掉，这里永远返回成功，不打断前端播放
func (s *PlaybackHandler) Track(c *gin.Context) {
	var req dto.TrackPlaybackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	actorID := c.GetString("user_id")

	update := &service.PlaybackUpdate{
		CurrentTime: req.CurrentTime,
		Duration:    req.Duration,
		Buffered:    req.Buffered,
		IsPlaying:   req.IsPlaying,
		Quality:     req.Quality,
	}
	s.playbackService.Track(c.Request.Context(), req.ResourceID, update, actorID)

	response.Success(c, nil)
}
