package repository

import (
	"Vanguard/internal/pkg/consts"
	"Vanguard/internal/pkg/redis"
	"context"

	"github.com/goccy/go-json"
)

// Preference 用户的 AI 助手偏好，替代浏览器 localStorage 的固定键存储
type Preference struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

// PreferenceRepo 偏好存储接口
type PreferenceRepo interface {
	Get(ctx context.Context, userID string) (*Preference, error)
	Put(ctx context.Context, userID string, pref *Preference) error
}

type redisPreferenceRepo struct{}

func NewPreferenceRepo() PreferenceRepo {
	return &redisPreferenceRepo{}
}

func (r *redisPreferenceRepo) Get(ctx context.Context, userID string) (*Preference, error) {
	raw, err := redis.GetValue(ctx, consts.PreferenceKey+userID)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return &Preference{}, nil
	}
	var pref Preference
	if err := json.Unmarshal([]byte(raw), &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *redisPreferenceRepo) Put(ctx context.Context, userID string, pref *Preference) error {
	raw, err := json.Marshal(pref)
	if err != nil {
		return err
	}
	return redis.SetValue(ctx, consts.PreferenceKey+userID, string(raw))
}
