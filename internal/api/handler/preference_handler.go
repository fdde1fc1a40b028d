package handler

import (
	"Vanguard/internal/api/dto"
	"Vanguard/internal/pkg/response"
	"Vanguard/internal/repository"
	"Vanguard/internal/service"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	preferenceService service.PreferenceService
}

func NewPreferenceHandler(preferenceService service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// Get 读取当前用户的 AI 助手偏好
func (s *PreferenceHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	pref, err := s.preferenceService.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pref)
}

// Put 保存当前用户的 AI 助手偏好
func (s *PreferenceHandler) Put(c *gin.Context) {
	var req dto.PreferenceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetString("user_id")
	pref := &repository.Preference{APIKey: req.APIKey, Model: req.Model}
	if err := s.preferenceService.Put(c.Request.Context(), userID, pref); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
