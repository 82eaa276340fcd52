package model

// ReminderType 提醒内容类型
type ReminderType string

const (
	ReminderCheckIn ReminderType = "checkin"
	ReminderBoost   ReminderType = "boost"
	ReminderBoth    ReminderType = "both"
)

func (t ReminderType) Valid() bool {
	return t == ReminderCheckIn || t == ReminderBoost || t == ReminderBoth
}

// ReminderSettings 每日提醒设置，Time 为本地 HH:MM
type ReminderSettings struct {
	Enabled bool         `json:"enabled"`
	Time    string       `json:"time"`
	Type    ReminderType `json:"type"`
}

// DefaultReminderSettings 未保存过设置时使用
func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{Enabled: false, Time: "09:00", Type: ReminderCheckIn}
}

// ReminderTrigger 最近一次触发的日期与时间，保证同一天同一时间只提醒一次
type ReminderTrigger struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// NotificationPermission 系统通知权限
type NotificationPermission string

const (
	PermissionDefault NotificationPermission = "default"
	PermissionGranted NotificationPermission = "granted"
	PermissionDenied  NotificationPermission = "denied"
)

// ReminderAlert 应用内提醒
type ReminderAlert struct {
	Type    ReminderType `json:"type"`
	Message string       `json:"message"`
	Date    string       `json:"date"`
	Time    string       `json:"time"`
}
