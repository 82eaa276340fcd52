package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"BoostMe/internal/service"
	"BoostMe/pkg/errors"
	"BoostMe/pkg/response"
)

// GetTodayMissions 当日任务，首次读取时写入默认任务
// GET /v1/missions/today
func GetTodayMissions(ctx context.Context, c *app.RequestContext) {
	result, err := service.Mission().Today(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ToggleMission 切换完成状态
// POST /v1/missions/:id/toggle
func ToggleMission(ctx context.Context, c *app.RequestContext) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.MissionNotFound)
		return
	}

	result, err := service.Mission().Toggle(ctx, id)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// SuggestMissions 让教练重新生成当日任务
// POST /v1/missions/suggest
func SuggestMissions(ctx context.Context, c *app.RequestContext) {
	result, err := service.Mission().Regenerate(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
