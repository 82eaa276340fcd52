package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BoostMe/internal/model/dto"
	"BoostMe/internal/service"
	"BoostMe/pkg/response"
)

// GetTodayCheckIn 查询当天打卡
// GET /v1/check-ins/today
func GetTodayCheckIn(ctx context.Context, c *app.RequestContext) {
	result, err := service.CheckIn().TodayView(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// SubmitCheckIn 提交当日打卡
// POST /v1/check-ins/today
func SubmitCheckIn(ctx context.Context, c *app.RequestContext) {
	var req dto.SubmitCheckInRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.CheckIn().Submit(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetCheckInHistory 全部打卡记录，新的在前
// GET /v1/check-ins/history
func GetCheckInHistory(ctx context.Context, c *app.RequestContext) {
	result, err := service.CheckIn().History(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, result, map[string]interface{}{"total": len(result)})
}
