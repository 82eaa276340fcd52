package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BoostMe/internal/model/dto"
	"BoostMe/internal/service"
	"BoostMe/pkg/response"
)

// GET /v1/chat/messages
func GetChatMessages(ctx context.Context, c *app.RequestContext) {
	messages, mascot := service.Chat().Snapshot()
	response.Success(ctx, c, dto.ChatResponse{Messages: messages, Mascot: mascot})
}

// SendChatMessage 发送中再次发送返回 409
// POST /v1/chat/messages
func SendChatMessage(ctx context.Context, c *app.RequestContext) {
	var req dto.SendChatRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	messages, mascot, err := service.Chat().Send(ctx, req.Message, nil)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.ChatResponse{Messages: messages, Mascot: mascot})
}

// ClearChat 开始新会话
// DELETE /v1/chat/messages
func ClearChat(ctx context.Context, c *app.RequestContext) {
	if err := service.Chat().Clear(); err != nil {
		response.Error(ctx, c, err)
		return
	}

	messages, mascot := service.Chat().Snapshot()
	response.Success(ctx, c, dto.ChatResponse{Messages: messages, Mascot: mascot})
}
