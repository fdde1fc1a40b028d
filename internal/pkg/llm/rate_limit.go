package llm

import (
	"golang.org/x/sync/semaphore"
)

var (
	ChatWeight = int64(5)
	ChatSem    = semaphore.NewWeighted(ChatWeight)
)
