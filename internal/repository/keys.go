package repository

// 本地存储键
const (
	KeyProfile            = "boostme_profile_data"
	KeyProfileImage       = "boostme_profile_image"
	KeyLogs               = "boostme_logs"
	KeyMissionsPrefix     = "boostme_missions_"
	KeyTotalMissions      = "boostme_total_missions"
	KeyReminderSettings   = "boostme_reminder_settings"
	KeyReminderLastFired  = "boostme_reminder_last_trigger"
	KeyNotificationPermit = "boostme_notification_permission"
)

// MissionsKey 每个日期一组任务
func MissionsKey(date string) string {
	return KeyMissionsPrefix + date
}
