package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BoostMe/internal/service"
	"BoostMe/pkg/response"
)

// GetHome 首页问候与今日吉祥物
// GET /v1/home
func GetHome(ctx context.Context, c *app.RequestContext) {
	result, err := service.Home().Get(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetStats 累计统计
// GET /v1/stats
func GetStats(ctx context.Context, c *app.RequestContext) {
	result, err := service.Stats().Get(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
