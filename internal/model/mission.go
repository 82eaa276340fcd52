package model

// DailyMission 每日小任务，每个日期一组
type DailyMission struct {
	ID        int64  `json:"id,string"` // snowflake 超出 JS 安全整数，按字符串传输
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// DefaultMissions 内置任务池，新的一天取前三个
var DefaultMissions = []DailyMission{
	{ID: 1, Text: "เขียนสิ่งที่ภูมิใจวันนี้ 1 ข้อ"},
	{ID: 2, Text: "ลองยืนหลังตรงและหายใจลึก 10 ครั้ง"},
	{ID: 3, Text: "ส่งข้อความขอบคุณใครสักคน"},
	{ID: 4, Text: "ยิ้มให้ตัวเองในกระจก"},
	{ID: 5, Text: "ดื่มน้ำ 1 แก้วใหญ่ตอนนี้เลย"},
}

const DailyMissionSeedCount = 3

// SeedMissions 返回新一天的默认任务副本
func SeedMissions() []DailyMission {
	out := make([]DailyMission, DailyMissionSeedCount)
	copy(out, DefaultMissions[:DailyMissionSeedCount])
	return out
}

// TaskStep 任务拆解的一步
type TaskStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}
