package service

import (
	"context"
	"strings"
	"sync"

	"BoostMe/internal/coach"
	"BoostMe/internal/model"
	"BoostMe/internal/model/dto"
	"BoostMe/pkg/errors"
)

// CoachingService 激励语、任务拆解以及 relay 端点
type CoachingService struct {
	d Deps
}

var (
	coachingService *CoachingService
	coachingOnce    sync.Once
)

func Coaching() *CoachingService {
	coachingOnce.Do(func() {
		coachingService = NewCoachingService(current())
	})

	return coachingService
}

func NewCoachingService(d Deps) *CoachingService {
	return &CoachingService{d: d.withDefaults()}
}

func (s *CoachingService) Motivate(ctx context.Context, mood string) string {
	return s.d.Coach.Motivate(ctx, strings.TrimSpace(mood))
}

func (s *CoachingService) BreakDownTask(ctx context.Context, task string) ([]model.TaskStep, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return nil, errors.InvalidRequest
	}
	return s.d.Coach.BreakDownTask(ctx, task)
}

// RelayReply 原样返回模型文本，不使用兜底，错误由 relay 转成 500
func (s *CoachingService) RelayReply(ctx context.Context, req dto.RelayChatRequest) (string, error) {
	return s.d.Coach.Reply(ctx, coach.Request{
		Mode:    coach.ParseMode(req.Mode),
		Message: req.Message,
		Profile: req.Profile,
		History: req.History,
		CheckIn: req.CheckIn,
	})
}
