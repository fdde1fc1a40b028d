package service

import (
	"Vanguard/internal/repository"
	"context"
)

// PreferenceService AI助手偏好服务，密钥与模型选择按用户持久化
type PreferenceService interface {
	Get(ctx context.Context, userID string) (*repository.Preference, error)
	Put(ctx context.Context, userID string, pref *repository.Preference) error
}

type preferenceServiceImpl struct {
	repo repository.PreferenceRepo
}

func NewPreferenceService(repo repository.PreferenceRepo) PreferenceService {
	return &preferenceServiceImpl{repo: repo}
}

func (s *preferenceServiceImpl) Get(ctx context.Context, userID string) (*repository.Preference, error) {
	pref, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, UnExpectedError
	}
	return pref, nil
}

func (s *preferenceServiceImpl) Put(ctx context.Context, userID string, pref *repository.Preference) error {
	if pref == nil {
		return ErrParamInvalid
	}
	if err := s.repo.Put(ctx, userID, pref); err != nil {
		return UnExpectedError
	}
	return nil
}
