package api

import (
	"Vanguard/internal/api/middleware"
	"Vanguard/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
			mediaGroup.POST("/playback", group.PlaybackHandler.Track)
			mediaGroup.GET("/:resource_id", group.MediaHandler.Resolve)
		}

		imGroup := apiGroup.Group("/im")
		{
			imGroup.GET("", group.WSHandler.Connect)
			authGroup := imGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/send", group.IMHandler.SendMessage)
				authGroup.GET("/history", group.IMHandler.GetChatHistory)
				authGroup.GET("/list", group.IMHandler.GetConversationList)
				authGroup.POST("/read", group.IMHandler.MarkAsRead)
				authGroup.POST("/star", group.IMHandler.ToggleStar)
				authGroup.POST("/important", group.IMHandler.ToggleImportant)
				authGroup.POST("/conversation", group.IMHandler.CreateConversation)
				authGroup.DELETE("/conversation/:conversation_id", group.IMHandler.DeleteConversation)
				authGroup.POST("/retry", group.IMHandler.RetryMessage)
			}
		}

		rosterGroup := apiGroup.Group("/roster")
		rosterGroup.Use(middleware.AuthMiddleware())
		{
			rosterGroup.GET("", group.RosterHandler.List)
			rosterGroup.GET("/:member_id", group.RosterHandler.GetByID)
		}

		sysbox := apiGroup.Group("/sysbox")
		sysbox.Use(middleware.AuthMiddleware())
		{
			sysbox.GET("/list", group.SysBoxHandler.GetNotificationList)
			sysbox.GET("/unread", group.SysBoxHandler.GetUnreadCount)
			sysbox.POST("/read", group.SysBoxHandler.MarkRead)
			sysbox.POST("/read/all", group.SysBoxHandler.MarkAllRead)

			staffGroup := sysbox.Group("")
			staffGroup.Use(middleware.CheckRoles("STAFF", "ADMIN"))
			{
				staffGroup.POST("/broadcast", group.SysBoxHandler.Broadcast)
			}
		}

		agentGroup := apiGroup.Group("/agent")
		{
			agentGroup.GET("/search", group.AgentHandler.Ask)

			authGroup := agentGroup.Group("")
			authGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authGroup.POST("/converse", group.AgentHandler.Converse)
			}
		}

		preferenceGroup := apiGroup.Group("/preference")
		preferenceGroup.Use(middleware.AuthMiddleware())
		{
			preferenceGroup.GET("", group.PreferenceHandler.Get)
			preferenceGroup.PUT("", group.PreferenceHandler.Put)
		}
	}

	return r
}
