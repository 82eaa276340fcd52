package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"BoostMe/internal/model"
	"BoostMe/internal/model/dto"
	"BoostMe/pkg/errors"
	"BoostMe/pkg/logger"
)

type ProfileService struct {
	d Deps
}

var (
	profileService *ProfileService
	profileOnce    sync.Once
)

func Profile() *ProfileService {
	profileOnce.Do(func() {
		profileService = NewProfileService(current())
	})

	return profileService
}

func NewProfileService(d Deps) *ProfileService {
	return &ProfileService{d: d.withDefaults()}
}

// Get 未保存过资料时返回空资料
func (s *ProfileService) Get(ctx context.Context) (model.UserProfile, error) {
	p, err := s.d.Repo.GetProfile(ctx)
	if err != nil || p == nil {
		return model.UserProfile{}, err
	}
	return *p, nil
}

// Save 去除首尾空白，头像为空时保留原头像，RemoveAvatar 时删除头像
func (s *ProfileService) Save(ctx context.Context, req dto.SaveProfileRequest) (model.UserProfile, error) {
	p := model.UserProfile{
		Name:   req.Name,
		Role:   req.Role,
		Goal:   req.Goal,
		Note:   req.Note,
		Avatar: req.Avatar,
	}.Trimmed()
	if req.RemoveAvatar {
		p.Avatar = ""
	}

	if err := s.d.Repo.SaveProfile(ctx, p); err != nil {
		logger.Logger.Error("Failed to save profile", zap.Error(err))
		return model.UserProfile{}, errors.StoreFailure
	}
	if req.RemoveAvatar {
		if err := s.d.Repo.RemoveAvatar(ctx); err != nil {
			logger.Logger.Error("Failed to remove profile image", zap.Error(err))
			return model.UserProfile{}, errors.StoreFailure
		}
	}
	return s.Get(ctx)
}

// Reset 清空全部本地数据并重启提醒
func (s *ProfileService) Reset(ctx context.Context) error {
	if err := s.d.Repo.Reset(ctx); err != nil {
		logger.Logger.Error("Failed to reset local data", zap.Error(err))
		return errors.StoreFailure
	}
	s.d.restarter().Restart(ctx)

	logger.Logger.Info("Local data reset")
	return nil
}
