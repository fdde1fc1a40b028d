package handler

import (
	"Vanguard/internal/api/dto"
	"Vanguard/internal/model"
	"Vanguard/internal/pkg/response"
	"Vanguard/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type IMHandler struct {
	imService service.IMService
}

func NewIMHandler(imService service.IMService) *IMHandler {
	return &IMHandler{imService: imService}
}

// SendMessage 发送消息接口
// 返回 sending 状态的乐观消息，后续状态经实时通道推送
func (s *IMHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	// 从 Context 中获取中间件解析出的当前用户 ID
	senderID := c.GetString("user_id")

	msg, err := s.imService.SendMessage(c.Request.Context(), senderID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toMessageDTO(msg))
}

// GetConversationList 获取会话列表
func (s *IMHandler) GetConversationList(c *gin.Context) {
	userID := c.GetString("user_id")
	list := s.imService.GetConversationList(c.Request.Context(), userID)

	res := make([]*dto.ConversationDTO, 0, len(list))
	for _, conv := range list {
		res = append(res, toConversationDTO(conv))
	}
	response.Success(c, res)
}

// GetChatHistory 获取会话的全量历史消息
func (s *IMHandler) GetChatHistory(c *gin.Context) {
	convID := c.Query("conversation_id")
	if convID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	msgs, err := s.imService.GetHistory(c.Request.Context(), convID)
	if err != nil {
		response.Error(c, err)
		return
	}

	res := make([]*dto.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, toMessageDTO(m))
	}
	response.Success(c, res)
}

// CreateConversation 新建会话
func (s *IMHandler) CreateConversation(c *gin.Context) {
	var req dto.CreateConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	contact := model.Contact{
		ID:   req.ContactID,
		Name: req.ContactName,
		Role: req.Role,
	}
	convID, err := s.imService.CreateConversation(c.Request.Context(), contact, req.Subject)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"conversation_id": convID})
}

// DeleteConversation 删除会话及其全部消息
func (s *IMHandler) DeleteConversation(c *gin.Context) {
	convID := c.Param("conversation_id")
	if err := s.imService.DeleteConversation(c.Request.Context(), convID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAsRead 标记会话已读，未读数清零
func (s *IMHandler) MarkAsRead(c *gin.Context) {
	var req dto.MarkAsReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.imService.MarkAsRead(c.Request.Context(), req.ConversationID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleStar 切换星标，带 message_id 针对消息，否则针对会话
func (s *IMHandler) ToggleStar(c *gin.Context) {
	var req dto.ToggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var starred bool
	var err error
	if req.MessageID != "" {
		starred, err = s.imService.ToggleMessageStar(c.Request.Context(), req.ConversationID, req.MessageID)
	} else {
		starred, err = s.imService.ToggleConversationStar(c.Request.Context(), req.ConversationID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"starred": starred})
}

// ToggleImportant 切换会话重要标记
func (s *IMHandler) ToggleImportant(c *gin.Context) {
	var req dto.ToggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	important, err := s.imService.ToggleImportant(c.Request.Context(), req.ConversationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"important": important})
}

// RetryMessage 重试投递失败的消息
func (s *IMHandler) RetryMessage(c *gin.Context) {
	var req dto.RetryMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.imService.RetryMessage(c.Request.Context(), req.ConversationID, req.MessageID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func toMessageDTO(m *model.Message) *dto.MessageDTO {
	res := &dto.MessageDTO{}
	if err := copier.Copy(res, m); err != nil {
		log.Warn("消息DTO转换失败", "msgID", m.ID, "err", err)
	}
	return res
}

func toConversationDTO(conv *model.Conversation) *dto.ConversationDTO {
	res := &dto.ConversationDTO{}
	if err := copier.Copy(res, conv); err != nil {
		log.Warn("会话DTO转换失败", "convID", conv.ID, "err", err)
	}
	res.ContactID = conv.Contact.ID
	res.ContactName = conv.Contact.Name
	res.Presence = conv.Contact.Presence
	return res
}
