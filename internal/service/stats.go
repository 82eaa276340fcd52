package service

import (
	"context"
	"math"
	"sync"

	"BoostMe/internal/model"
)

// ComputeStats 平均分保留一位小数，没有记录时为 0
func ComputeStats(logs []model.CheckInRecord, missionsCompleted int) model.UserStats {
	stats := model.UserStats{
		TotalCheckIns:          len(logs),
		TotalMissionsCompleted: missionsCompleted,
	}
	if len(logs) == 0 {
		return stats
	}

	sum := 0
	for _, l := range logs {
		sum += l.Score
	}
	stats.AvgConfidence = math.Round(float64(sum)/float64(len(logs))*10) / 10
	return stats
}

type StatsService struct {
	d Deps
}

var (
	statsService *StatsService
	statsOnce    sync.Once
)

func Stats() *StatsService {
	statsOnce.Do(func() {
		statsService = NewStatsService(current())
	})

	return statsService
}

func NewStatsService(d Deps) *StatsService {
	return &StatsService{d: d.withDefaults()}
}

func (s *StatsService) Get(ctx context.Context) (model.UserStats, error) {
	logs, err := s.d.Repo.GetLogs(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	total, err := s.d.Repo.GetTotalMissions(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	return ComputeStats(logs, total), nil
}
