package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"BoostMe/internal/mascot"
	"BoostMe/internal/model"
	"BoostMe/internal/model/dto"
	"BoostMe/pkg/errors"
	"BoostMe/pkg/logger"
	"BoostMe/pkg/snowflake"
)

type CheckInService struct {
	d  Deps
	mu sync.Mutex
}

var (
	checkInService *CheckInService
	checkInOnce    sync.Once
)

func CheckIn() *CheckInService {
	checkInOnce.Do(func() {
		checkInService = NewCheckInService(current())
	})

	return checkInService
}

func NewCheckInService(d Deps) *CheckInService {
	return &CheckInService{d: d.withDefaults()}
}

// Today 当天第一条记录，没有时为 nil
func (s *CheckInService) Today(ctx context.Context) (*model.CheckInRecord, error) {
	logs, err := s.d.Repo.GetLogs(ctx)
	if err != nil {
		return nil, err
	}
	today := s.d.today()
	for i := range logs {
		if logs[i].Date == today {
			rec := logs[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// TodayView 当天记录、吉祥物状态和可选心情
func (s *CheckInService) TodayView(ctx context.Context) (*dto.TodayCheckInResponse, error) {
	rec, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TodayCheckInResponse{
		Record: rec,
		Mascot: mascot.FromCheckIn(rec),
		Moods:  model.CheckInMoods,
	}, nil
}

// History 全部日志，按时间倒序
func (s *CheckInService) History(ctx context.Context) ([]model.CheckInRecord, error) {
	logs, err := s.d.Repo.GetLogs(ctx)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.CheckInRecord{}
	}
	return logs, nil
}

// Submit 校验失败时不调用教练，也不写入任何数据
func (s *CheckInService) Submit(ctx context.Context, req dto.SubmitCheckInRequest) (*model.CheckInRecord, error) {
	mood := model.CheckInMood(strings.TrimSpace(req.Mood))
	if mood == "" || !mood.Valid() {
		return nil, errors.CheckInMoodRequired
	}
	if req.Score < model.MinConfidenceScore || req.Score > model.MaxConfidenceScore {
		return nil, errors.CheckInScoreInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.CheckInAlreadyDone
	}

	profile, err := s.d.Repo.GetProfile(ctx)
	if err != nil {
		logger.Logger.Warn("Failed to load profile for reflection", zap.Error(err))
	}

	rec := model.CheckInRecord{
		ID:         snowflake.NextString(),
		Date:       s.d.today(),
		Score:      req.Score,
		Mood:       string(mood),
		Note:       req.Note,
		AIResponse: s.d.Coach.Reflect(ctx, profile, req.Score, string(mood), req.Note),
	}

	if _, err := s.d.Repo.PrependLog(ctx, rec); err != nil {
		logger.Logger.Error("Failed to save check-in", zap.Error(err))
		return nil, errors.StoreFailure
	}

	logger.Logger.Info("Check-in saved",
		zap.String("id", rec.ID),
		zap.String("date", rec.Date),
		zap.Int("score", rec.Score),
	)
	return &rec, nil
}
