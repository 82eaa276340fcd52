package dto

import "BoostMe/internal/model"

// SaveProfileRequest 保存资料，avatar 为空时保留原头像
type SaveProfileRequest struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Goal   string `json:"goal"`
	Note   string `json:"note"`
	Avatar string `json:"avatar"`
	// RemoveAvatar 为 true 时删除已保存的头像，忽略 Avatar
	RemoveAvatar bool `json:"removeAvatar"`
}

// SaveReminderRequest 保存提醒设置
type SaveReminderRequest struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
	Type    string `json:"type"`
}

// ReminderResponse 提醒设置与状态文案
type ReminderResponse struct {
	Settings   model.ReminderSettings       `json:"settings"`
	Permission model.NotificationPermission `json:"permission"`
	Status     string                       `json:"status,omitempty"`
}
