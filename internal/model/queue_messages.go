package model

// ReminderNotificationMessage 系统通知消息，由 worker 投递到桌面
type ReminderNotificationMessage struct {
	MessageID string       `json:"message_id"` // 用于幂等性检查
	Type      ReminderType `json:"type"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	Date      string       `json:"date"`
	Time      string       `json:"time"`
}
