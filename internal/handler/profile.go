package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BoostMe/internal/model/dto"
	"BoostMe/internal/service"
	"BoostMe/pkg/response"
)

// GET /v1/profile
func GetProfile(ctx context.Context, c *app.RequestContext) {
	result, err := service.Profile().Get(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// PUT /v1/profile
func SaveProfile(ctx context.Context, c *app.RequestContext) {
	var req dto.SaveProfileRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Profile().Save(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ResetProfile 清空所有本地数据，聊天会话一并重置
// DELETE /v1/profile
func ResetProfile(ctx context.Context, c *app.RequestContext) {
	if err := service.Profile().Reset(ctx); err != nil {
		response.Error(ctx, c, err)
		return
	}
	service.Chat().Reset()

	response.NoContent(ctx, c)
}
