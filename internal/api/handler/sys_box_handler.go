package handler

import (
	"Vanguard/internal/api/dto"
	"Vanguard/internal/model"
	"Vanguard/internal/pkg/response"
	"Vanguard/internal/repository"
	"Vanguard/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SysBoxHandler struct {
	notificationService service.NotificationService
	rosterRepo          repository.RosterRepo
}

func NewSysBoxHandler(s service.NotificationService, rosterRepo repository.RosterRepo) *SysBoxHandler {
	return &SysBoxHandler{
		notificationService: s,
		rosterRepo:          rosterRepo,
	}
}

// GetNotificationList 获取通知列表
func (h *SysBoxHandler) GetNotificationList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	userID := c.GetString("user_id")

	list := h.notificationService.GetNotificationList(c.Request.Context(), userID, page, pageSize)
	response.Success(c, list)
}

// GetUnreadCount 获取未读数
func (h *SysBoxHandler) GetUnreadCount(c *gin.Context) {
	userID := c.GetString("user_id")

	unread := h.notificationService.GetUnreadCount(c.Request.Context(), userID)
	response.Success(c, dto.NotificationUnreadDTO{UnreadCount: unread})
}

// MarkRead 标记单条已读
func (h *SysBoxHandler) MarkRead(c *gin.Context) {
	var req dto.MarkNotificationReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetString("user_id")
	if err := h.notificationService.MarkRead(c.Request.Context(), userID, req.NotificationID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// MarkAllRead 一键已读
func (h *SysBoxHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString("user_id")
	h.notificationService.MarkAllRead(c.Request.Context(), userID)

	response.Success(c, nil)
}

// Broadcast 面向全体成员的系统广播，仅限 STAFF/ADMIN
func (h *SysBoxHandler) Broadcast(c *gin.Context) {
	var req dto.BroadcastReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	senderID := c.GetString("user_id")
	count := 0
	for _, member := range h.rosterRepo.All() {
		if member.ID == senderID {
			continue
		}
		h.notificationService.Notify(c.Request.Context(), &model.Notification{
			ReceiverID:  member.ID,
			SenderID:    senderID,
			Kind:        model.NotificationKindSystem,
			Title:       req.Title,
			Description: req.Description,
			Type:        req.Type,
		})
		count++
	}

	response.Success(c, gin.H{"delivered": count})
}
