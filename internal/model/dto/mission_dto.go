package dto

import "BoostMe/internal/model"

// MissionsResponse 当日任务及累计完成数
type MissionsResponse struct {
	Date           string               `json:"date"`
	Missions       []model.DailyMission `json:"missions"`
	TotalCompleted int                  `json:"totalCompleted"`
}
