package service

import (
	"context"
	"sync"

	"BoostMe/internal/mascot"
	"BoostMe/internal/model/dto"
)

type HomeService struct {
	d Deps
}

var (
	homeService *HomeService
	homeOnce    sync.Once
)

func Home() *HomeService {
	homeOnce.Do(func() {
		homeService = NewHomeService(current())
	})

	return homeService
}

func NewHomeService(d Deps) *HomeService {
	return &HomeService{d: d.withDefaults()}
}

// Get 问候名、当天吉祥物状态和统计
func (s *HomeService) Get(ctx context.Context) (*dto.HomeResponse, error) {
	profile, err := s.d.Repo.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	today, err := NewCheckInService(s.d).Today(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := NewStatsService(s.d).Get(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.HomeResponse{
		Name:    mascot.GreetingName(profile),
		Today:   today,
		Mascot:  mascot.FromCheckIn(today),
		Stats:   stats,
		Profile: profile,
	}, nil
}
