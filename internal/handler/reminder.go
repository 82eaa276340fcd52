package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BoostMe/internal/model/dto"
	"BoostMe/internal/service"
	"BoostMe/pkg/response"
)

// GET /v1/reminder
func GetReminder(ctx context.Context, c *app.RequestContext) {
	result, err := service.Reminder().Get(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// SaveReminder 保存后立即重启提醒引擎
// PUT /v1/reminder
func SaveReminder(ctx context.Context, c *app.RequestContext) {
	var req dto.SaveReminderRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Reminder().Save(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetReminderAlerts 取出待展示的应用内提醒
// GET /v1/reminder/alerts
func GetReminderAlerts(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, service.Reminder().Alerts())
}
