package wire

import (
	"Vanguard/internal/api"
	"Vanguard/internal/api/config"
	"Vanguard/internal/api/handler"
	"Vanguard/internal/job"
	"Vanguard/internal/pkg/channel"
	"Vanguard/internal/pkg/cron"
	"Vanguard/internal/pkg/llm"
	"Vanguard/internal/pkg/minio"
	"Vanguard/internal/pkg/security"
	"Vanguard/internal/repository"
	"Vanguard/internal/service"

	"github.com/gin-gonic/gin"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	CronManager *cron.Manager
	IMService   service.IMService
}

func BuildApplication(cfg *config.Config) (*ApplicationContainer, error) {
	conversationStore := repository.NewConversationStore(repository.SeedConversations())
	notificationStore := repository.NewNotificationStore()
	rosterRepo := repository.NewRosterRepo(repository.SeedRoster())
	playbackRepo := repository.NewPlaybackRepo()
	preferenceRepo := repository.NewPreferenceRepo()

	realtimeChannel := channel.NewRedisChannel()
	mediaBackend := minio.NewBackend()
	mediaSigner := security.NewMediaTokenSigner(cfg.JWT.MediaSecret)

	mediaService := service.NewMediaService(mediaBackend, mediaSigner, cfg.Media)
	prefetchQueue := service.NewPrefetchQueue(mediaBackend, mediaService, cfg.Media)
	playbackService := service.NewPlaybackService(playbackRepo, prefetchQueue, cfg.Media)
	notificationService := service.NewNotificationService(notificationStore, realtimeChannel)
	mentionService := service.NewMentionService(rosterRepo, notificationService, cfg.Mention)
	imService := service.NewIMService(conversationStore, realtimeChannel, mentionService, mediaService, rosterRepo, cfg.Messaging, nil)
	preferenceService := service.NewPreferenceService(preferenceRepo)

	mentor := llm.NewMentor()

	handlers := &api.HandlersGroup{
		MediaHandler:      handler.NewMediaHandler(mediaService),
		PlaybackHandler:   handler.NewPlaybackHandler(playbackService),
		IMHandler:         handler.NewIMHandler(imService),
		WSHandler:         handler.NewWsHandler(imService, realtimeChannel),
		SysBoxHandler:     handler.NewSysBoxHandler(notificationService, rosterRepo),
		AgentHandler:      handler.NewAgentHandler(mentor),
		PreferenceHandler: handler.NewPreferenceHandler(preferenceService),
		RosterHandler:     handler.NewRosterHandler(rosterRepo),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob(), job.NewPlaybackSweepJob(playbackRepo))

	return &ApplicationContainer{
		Router:      router,
		CronManager: cronMgr,
		IMService:   imService,
	}, nil
}
