package service

import (
	"Vanguard/internal/api/config"
	"Vanguard/internal/model"
	"Vanguard/internal/pkg/consts"
	"Vanguard/internal/repository"
	"context"
	log "log/slog"
	"regexp"
	"strings"
)

// 提及token: @First 或 @"Full Name"
var mentionRegex = regexp.MustCompile(`@(?:"([^"]+)"|([A-Za-z][A-Za-z0-9_]*))`)

// 多候选命中时的策略
const (
	AmbiguityFirst = "first" // 取第一个命中
	AmbiguitySkip  = "skip"  // 出现歧义则不解析该token
)

// MentionResult 提及解析结果
type MentionResult struct {
	ProcessedText    string   `json:"processed_text"`
	MentionedUserIDs []string `json:"mentioned_user_ids"`
}

// MentionService @提及处理服务
type MentionService interface {
	// ProcessMentions 扫描文本中的提及token并解析花名册成员，为每个命中成员产生一条通知
	ProcessMentions(ctx context.Context, senderID, senderName, text string) MentionResult
}

type mentionServiceImpl struct {
	roster   repository.RosterRepo
	notifier NotificationService
	policy   string
	snippet  int
}

func NewMentionService(roster repository.RosterRepo, notifier NotificationService, cfg config.MentionConfig) MentionService {
	policy := cfg.AmbiguityPolicy
	if policy != AmbiguitySkip {
		policy = AmbiguityFirst
	}
	snippet := cfg.SnippetLength
	if snippet <= 0 {
		snippet = consts.DefaultSnippetLength
	}
	return &mentionServiceImpl{
		roster:   roster,
		notifier: notifier,
		policy:   policy,
		snippet:  snippet,
	}
}

func (s *mentionServiceImpl) ProcessMentions(ctx context.Context, senderID, senderName, text string) MentionResult {
	res := MentionResult{ProcessedText: text}
	if text == "" {
		return res
	}

	seen := make(map[string]struct{})

	processed := mentionRegex.ReplaceAllStringFunc(text, func(token string) string {
		sub := mentionRegex.FindStringSubmatch(token)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}

		member := s.resolve(name)
		if member == nil {
			return token
		}

		if _, dup := seen[member.ID]; !dup {
			seen[member.ID] = struct{}{}
			res.MentionedUserIDs = append(res.MentionedUserIDs, member.ID)
			s.emitNotification(ctx, senderID, senderName, member, text)
		}
		return "@" + member.FullName
	})

	res.ProcessedText = processed
	return res
}

// resolve 按配置的歧义策略解析候选成员
func (s *mentionServiceImpl) resolve(name string) *model.RosterMember {
	candidates := s.roster.MatchName(name)
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	default:
		if s.policy == AmbiguitySkip {
			log.Debug("提及存在歧义，跳过解析", "token", name, "candidates", len(candidates))
			return nil
		}
		return candidates[0]
	}
}

func (s *mentionServiceImpl) emitNotification(ctx context.Context, senderID, senderName string, member *model.RosterMember, text string) {
	s.notifier.Notify(ctx, &model.Notification{
		ReceiverID:  member.ID,
		SenderID:    senderID,
		Kind:        model.NotificationKindMention,
		Title:       senderName + " 在消息中提到了你",
		Description: truncateRunes(strings.TrimSpace(text), s.snippet),
		Type:        model.NotificationTypeStandard,
	})
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
