package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BoostMe/internal/model/dto"
	"BoostMe/internal/service"
	"BoostMe/pkg/response"
)

// POST /v1/coach/motivation
func GetMotivation(ctx context.Context, c *app.RequestContext) {
	var req dto.MotivationRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.MotivationResponse{Message: service.Coaching().Motivate(ctx, req.Mood)})
}

// POST /v1/coach/task-breakdown
func BreakDownTask(ctx context.Context, c *app.RequestContext) {
	var req dto.TaskBreakdownRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	steps, err := service.Coaching().BreakDownTask(ctx, req.Task)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.TaskBreakdownResponse{Steps: steps})
}
