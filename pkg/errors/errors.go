package errors

import stderrors "errors"

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 通用错误。
var (
	InvalidRequest = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	StoreFailure   = Definition{Code: "STORE_FAILURE", Message: "Local store unavailable"}
	RateLimited    = Definition{Code: "RATE_LIMITED", Message: "Too many requests"}
)

// 打卡模块错误。
var (
	CheckInMoodRequired = Definition{Code: "CHECK_IN_MOOD_REQUIRED", Message: "กรุณาเลือกอารมณ์ของคุณวันนี้"}
	CheckInScoreInvalid = Definition{Code: "CHECK_IN_SCORE_INVALID", Message: "Confidence score must be between 1 and 10"}
	CheckInAlreadyDone  = Definition{Code: "CHECK_IN_ALREADY_DONE", Message: "Check-in already done"}
)

// 任务模块错误。
var (
	MissionNotFound = Definition{Code: "MISSION_NOT_FOUND", Message: "Mission not found"}
)

// 提醒模块错误。
var (
	ReminderTimeInvalid = Definition{Code: "REMINDER_TIME_INVALID", Message: "Reminder time must be HH:MM"}
	ReminderTypeInvalid = Definition{Code: "REMINDER_TYPE_INVALID", Message: "Reminder type must be checkin, boost or both"}
)

// 教练与聊天模块错误。
var (
	ChatBusy         = Definition{Code: "CHAT_BUSY", Message: "A message is already being sent"}
	ChatEmptyMessage = Definition{Code: "CHAT_EMPTY_MESSAGE", Message: "Message must not be empty"}
	CoachModeInvalid = Definition{Code: "COACH_MODE_INVALID", Message: "Unknown coaching mode"}
	CoachUnavailable = Definition{Code: "COACH_UNAVAILABLE", Message: "Gemini error"}
	TaskBreakdown    = Definition{Code: "TASK_BREAKDOWN_FAILED", Message: "Failed to break down task. Please try again."}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	InvalidRequest.Code:      InvalidRequest,
	StoreFailure.Code:        StoreFailure,
	RateLimited.Code:         RateLimited,
	CheckInMoodRequired.Code: CheckInMoodRequired,
	CheckInScoreInvalid.Code: CheckInScoreInvalid,
	CheckInAlreadyDone.Code:  CheckInAlreadyDone,
	MissionNotFound.Code:     MissionNotFound,
	ReminderTimeInvalid.Code: ReminderTimeInvalid,
	ReminderTypeInvalid.Code: ReminderTypeInvalid,
	ChatBusy.Code:            ChatBusy,
	ChatEmptyMessage.Code:    ChatEmptyMessage,
	CoachModeInvalid.Code:    CoachModeInvalid,
	CoachUnavailable.Code:    CoachUnavailable,
	TaskBreakdown.Code:       TaskBreakdown,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// As 从错误链中取出 Definition
func As(err error) (Definition, bool) {
	var def Definition
	if stderrors.As(err, &def) {
		return def, true
	}
	return Definition{}, false
}
