package dto

import "BoostMe/internal/model"

// ========== 教练相关 DTO ==========

// RelayChatRequest relay 请求体，profile 可为 null
type RelayChatRequest struct {
	Message string               `json:"message"`
	Profile *model.UserProfile   `json:"profile"`
	Mode    string               `json:"mode"`
	History []model.ChatMessage  `json:"history,omitempty"`
	CheckIn *model.CheckInRecord `json:"checkIn,omitempty"`
}

// RelayChatResponse 成功时只有 reply
type RelayChatResponse struct {
	Reply string `json:"reply"`
}

// RelayErrorResponse 失败时只有 error
type RelayErrorResponse struct {
	Error string `json:"error"`
}

// SendChatRequest 发送聊天消息
type SendChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse 当前会话与吉祥物状态
type ChatResponse struct {
	Messages []model.ChatMessage `json:"messages"`
	Mascot   model.MascotState   `json:"mascot"`
}

type MotivationRequest struct {
	Mood string `json:"mood"`
}

type MotivationResponse struct {
	Message string `json:"message"`
}

type TaskBreakdownRequest struct {
	Task string `json:"task"`
}

type TaskBreakdownResponse struct {
	Steps []model.TaskStep `json:"steps"`
}
