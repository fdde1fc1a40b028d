package consts

const (
	PlaybackSnapshotKey = "playback:snapshot:"
	MediaTempKey        = "media:temp"
	PreferenceKey       = "user:preference:"
	IMConversationKey   = "im:conversation:"
	NotifyUserKey       = "notify:user:"
)

// 定时任务互斥锁，多副本部署时保证单跑
const (
	MediaCleanLockKey    = "lock:job:media_clean"
	PlaybackSweepLockKey = "lock:job:playback_sweep"
)
