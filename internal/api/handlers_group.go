package api

import "Vanguard/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	MediaHandler      *handler.MediaHandler
	PlaybackHandler   *handler.PlaybackHandler
	IMHandler         *handler.IMHandler
	WSHandler         *handler.WsHandler
	SysBoxHandler     *handler.SysBoxHandler
	AgentHandler      *handler.AgentHandler
	PreferenceHandler *handler.PreferenceHandler
	RosterHandler     *handler.RosterHandler
}
