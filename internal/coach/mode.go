package coach

import "BoostMe/internal/model"

// Mode 教练调用模式
type Mode string

const (
	ModeChat          Mode = "chat"
	ModeReflect       Mode = "reflect"
	ModeSuggest       Mode = "suggest_activities"
	ModeMotivation    Mode = "motivation"
	ModeTaskBreakdown Mode = "task_breakdown"
)

// ParseMode 未知模式按 chat 处理
func ParseMode(s string) Mode {
	switch m := Mode(s); m {
	case ModeChat, ModeReflect, ModeSuggest, ModeMotivation, ModeTaskBreakdown:
		return m
	default:
		return ModeChat
	}
}

// Request 两种传输方式共用的输入
type Request struct {
	Mode    Mode
	Message string
	Profile *model.UserProfile
	// History 只在 chat 模式使用，不含本次消息
	History []model.ChatMessage
	// CheckIn 只在 reflect 模式使用
	CheckIn *model.CheckInRecord
}
