package model

import "strings"

// UserProfile 用户资料，头像单独存储
type UserProfile struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Goal   string `json:"goal"`
	Note   string `json:"note"`
	Avatar string `json:"avatar,omitempty"`
}

// Trimmed 返回去除首尾空白后的副本
func (p UserProfile) Trimmed() UserProfile {
	return UserProfile{
		Name:   strings.TrimSpace(p.Name),
		Role:   strings.TrimSpace(p.Role),
		Goal:   strings.TrimSpace(p.Goal),
		Note:   strings.TrimSpace(p.Note),
		Avatar: strings.TrimSpace(p.Avatar),
	}
}
