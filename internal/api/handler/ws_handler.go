package handler

import (
	"Vanguard/internal/pkg/channel"
	"Vanguard/internal/pkg/consts"
	"Vanguard/internal/pkg/response"
	"Vanguard/internal/pkg/security"
	"Vanguard/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct {
	imService service.IMService
	ch        channel.Channel
}

func NewWsHandler(im service.IMService, ch channel.Channel) *WsHandler {
	return &WsHandler{imService: im, ch: ch}
}

func (s *WsHandler) Connect(c *gin.Context) {
	// 鉴权
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("WS 鉴权失败", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	userID := claims.UserID

	// 升级 Websocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// 订阅用户参与的所有会话主题，外加个人通知主题
	list := s.imService.GetConversationList(context.Background(), userID)

	topics := []string{consts.NotifyUserKey + userID}
	for _, conv := range list {
		topics = append(topics, consts.IMConversationKey+conv.ID)
	}

	events, cancel, err := s.ch.Subscribe(context.Background(), topics...)
	if err != nil {
		log.Error("实时通道订阅失败", "userID", userID, "err", err)
		return
	}
	defer cancel()

	log.Info("用户 WS 连接已建立", "userID", userID, "topics", len(topics))

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：监听通道并推送至客户端
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				log.Info("实时通道已关闭", "userID", userID)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, ev.Payload); err != nil {
				log.Error("WS 推送失败", "userID", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("用户 WS 连接已断开", "userID", userID)
			return
		}
	}
}
