package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"BoostMe/internal/model/dto"
	"BoostMe/internal/service"
	"BoostMe/pkg/logger"
)

// RelayChat 代替前端调用模型，响应只有 reply 或 error
// POST /chat, POST /api/chat
func RelayChat(ctx context.Context, c *app.RequestContext) {
	var req dto.RelayChatRequest
	if err := json.Unmarshal(c.Request.Body(), &req); err != nil {
		c.JSON(http.StatusBadRequest, dto.RelayErrorResponse{Error: "invalid request body"})
		return
	}

	reply, err := service.Coaching().RelayReply(ctx, req)
	if err != nil {
		logger.Logger.Error("Gemini error", zap.String("mode", req.Mode), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.RelayErrorResponse{Error: "Gemini error"})
		return
	}

	c.JSON(http.StatusOK, dto.RelayChatResponse{Reply: reply})
}

// RelayRateLimited relay 限流时保持 {error} 响应格式
func RelayRateLimited(ctx context.Context, c *app.RequestContext) {
	c.JSON(http.StatusTooManyRequests, dto.RelayErrorResponse{Error: "Too many requests"})
}
