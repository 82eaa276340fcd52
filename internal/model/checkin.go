package model

// CheckInMood 打卡时选择的心情
type CheckInMood string

const (
	MoodConfident CheckInMood = "confident"
	MoodExcited   CheckInMood = "excited"
	MoodTired     CheckInMood = "tired"
	MoodSad       CheckInMood = "sad"
	MoodWorried   CheckInMood = "worried"
	MoodFear      CheckInMood = "fear"
	MoodConfused  CheckInMood = "confused"
)

// CheckInMoods 展示顺序
var CheckInMoods = []CheckInMood{
	MoodConfident, MoodExcited, MoodTired, MoodSad, MoodWorried, MoodFear, MoodConfused,
}

func (m CheckInMood) Valid() bool {
	for _, v := range CheckInMoods {
		if v == m {
			return true
		}
	}
	return false
}

const (
	MinConfidenceScore = 1
	MaxConfidenceScore = 10
)

// CheckInRecord 每日信心打卡，日志按时间倒序保存
type CheckInRecord struct {
	ID         string `json:"id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Score      int    `json:"score"`
	Mood       string `json:"mood"`
	Note       string `json:"note"`
	AIResponse string `json:"aiResponse"`
}

// UserStats 由日志和任务计数派生
type UserStats struct {
	TotalCheckIns          int     `json:"totalCheckIns"`
	AvgConfidence          float64 `json:"avgConfidence"`
	TotalMissionsCompleted int     `json:"totalMissionsCompleted"`
}
