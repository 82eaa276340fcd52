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

// MissionService 当日任务读写，计数器只在切换时增减
type MissionService struct {
	d  Deps
	mu sync.Mutex
}

var (
	missionService *MissionService
	missionOnce    sync.Once
)

func Mission() *MissionService {
	missionOnce.Do(func() {
		missionService = NewMissionService(current())
	})

	return missionService
}

func NewMissionService(d Deps) *MissionService {
	return &MissionService{d: d.withDefaults()}
}

// Today 当天没有任务时写入默认三项
func (s *MissionService) Today(ctx context.Context) (*dto.MissionsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := s.d.today()
	missions, err := s.todayLocked(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, date, missions)
}

func (s *MissionService) todayLocked(ctx context.Context, date string) ([]model.DailyMission, error) {
	missions, ok, err := s.d.Repo.GetMissions(ctx, date)
	if err != nil {
		return nil, err
	}
	if ok {
		return missions, nil
	}

	missions = model.SeedMissions()
	if err := s.d.Repo.SaveMissions(ctx, date, missions); err != nil {
		return nil, err
	}
	return missions, nil
}

func (s *MissionService) view(ctx context.Context, date string, missions []model.DailyMission) (*dto.MissionsResponse, error) {
	total, err := s.d.Repo.GetTotalMissions(ctx)
	if err != nil {
		return nil, err
	}
	if missions == nil {
		missions = []model.DailyMission{}
	}
	return &dto.MissionsResponse{Date: date, Missions: missions, TotalCompleted: total}, nil
}

// Toggle 未完成→完成计数 +1，完成→未完成计数 -1，最低为 0
func (s *MissionService) Toggle(ctx context.Context, id int64) (*dto.MissionsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := s.d.today()
	missions, err := s.todayLocked(ctx, date)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range missions {
		if missions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.MissionNotFound
	}

	total, err := s.d.Repo.GetTotalMissions(ctx)
	if err != nil {
		return nil, err
	}
	if missions[idx].Completed {
		total--
	} else {
		total++
	}
	missions[idx].Completed = !missions[idx].Completed

	if err := s.d.Repo.SetTotalMissions(ctx, total); err != nil {
		return nil, err
	}
	if err := s.d.Repo.SaveMissions(ctx, date, missions); err != nil {
		return nil, err
	}
	return s.view(ctx, date, missions)
}

// Regenerate 用教练建议替换当天任务，失败时为固定三项
func (s *MissionService) Regenerate(ctx context.Context) (*dto.MissionsResponse, error) {
	profile, err := s.d.Repo.GetProfile(ctx)
	if err != nil {
		logger.Logger.Warn("Failed to load profile for suggestions", zap.Error(err))
	}
	missions := s.d.Coach.SuggestActivities(ctx, profile)

	s.mu.Lock()
	defer s.mu.Unlock()

	date := s.d.today()
	if err := s.d.Repo.SaveMissions(ctx, date, missions); err != nil {
		return nil, err
	}
	return s.view(ctx, date, missions)
}
